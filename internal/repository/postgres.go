package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	apperrors "octofit-tracker/internal/errors"
	"octofit-tracker/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// BatchSize bounds a single INSERT issued by InsertMany
const BatchSize = 500

const userEmailIndex = "idx_users_email"

// uniqueViolation is the SQLSTATE postgres reports for a duplicate key
const uniqueViolation = "23505"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// gormCollection stores one kind in its own PostgreSQL table.
// The *gorm.DB must keep driver errors untranslated so translate can read the
// violated constraint from the *pgconn.PgError.
type gormCollection[T models.Record[T]] struct {
	db     *gorm.DB
	schema Schema[T]
}

func newGormCollection[T models.Record[T]](db *gorm.DB, schema Schema[T]) *gormCollection[T] {
	return &gormCollection[T]{db: db, schema: schema}
}

// NewPostgresStore creates a Store over a gorm connection. Call Migrate before use.
func NewPostgresStore(db *gorm.DB) *Store {
	return &Store{
		Teams:       newGormCollection(db, TeamSchema()),
		Users:       newGormCollection(db, UserSchema()),
		Activities:  newGormCollection(db, ActivitySchema()),
		Leaderboard: newGormCollection(db, LeaderboardSchema()),
		Workouts:    newGormCollection(db, WorkoutSchema()),
		backend:     &postgresBackend{db: db},
	}
}

// Migrate runs database migrations for every kind
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&models.Team{},
		&models.User{},
		&models.Activity{},
		&models.LeaderboardEntry{},
		&models.Workout{},
	)
}

func (c *gormCollection[T]) Clear(ctx context.Context) error {
	return c.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(new(T)).Error
}

func (c *gormCollection[T]) InsertMany(ctx context.Context, records []T) error {
	if len(records) == 0 {
		return nil
	}
	// one transaction so a failing batch inserts nothing
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&records, BatchSize).Error
	})
	return c.translate(err)
}

func (c *gormCollection[T]) Create(ctx context.Context, record T) error {
	return c.translate(c.db.WithContext(ctx).Create(&record).Error)
}

func (c *gormCollection[T]) Get(ctx context.Context, id int64) (T, error) {
	var rec T
	err := c.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rec, c.schema.notFound(id)
		}
		return rec, err
	}
	return rec, nil
}

func (c *gormCollection[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	filters, err := c.schema.filterValues(opts.Filters)
	if err != nil {
		return nil, err
	}

	q := c.db.WithContext(ctx).Model(new(T))

	// map iteration order is random; sort for a stable SQL string
	columns := make([]string, 0, len(filters))
	for column := range filters {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	for _, column := range columns {
		q = q.Where(fmt.Sprintf("%q = ?", column), filters[column])
	}

	if search := strings.TrimSpace(opts.Search); search != "" && len(c.schema.Search) > 0 {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		conds := make([]string, len(c.schema.Search))
		args := make([]any, len(c.schema.Search))
		for i, column := range c.schema.Search {
			conds[i] = fmt.Sprintf("LOWER(%q) LIKE ?", column)
			args[i] = pattern
		}
		q = q.Where(strings.Join(conds, " OR "), args...)
	}

	records := make([]T, 0)
	if err := q.Order(c.schema.Order).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (c *gormCollection[T]) Update(ctx context.Context, id int64, record T) error {
	record = record.WithPrimaryKey(id)
	res := c.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Select("*").
		Updates(&record)
	if res.Error != nil {
		return c.translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return c.schema.notFound(id)
	}
	return nil
}

func (c *gormCollection[T]) Delete(ctx context.Context, id int64) error {
	res := c.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return c.schema.notFound(id)
	}
	return nil
}

func (c *gormCollection[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(new(T)).Count(&count).Error
	return count, err
}

// translate maps a unique violation to AlreadyExistsError, naming the unique
// column when the violated constraint belongs to one
func (c *gormCollection[T]) translate(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		for _, u := range c.schema.Unique {
			if strings.Contains(pgErr.ConstraintName, u.Column) {
				return fmt.Errorf("%w: %s", c.schema.duplicateField(u.Column), pgErr.Detail)
			}
		}
		return fmt.Errorf("%w: %s", apperrors.NewAlreadyExistsError(c.schema.Entity, "with the same id"), pgErr.Detail)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", apperrors.NewAlreadyExistsError(c.schema.Entity, "with the same id or unique field"), err)
	}
	return err
}

type postgresBackend struct {
	db *gorm.DB
}

func (b *postgresBackend) ensureUserEmailIndex(ctx context.Context) error {
	m := b.db.WithContext(ctx).Migrator()
	if m.HasIndex(&models.User{}, userEmailIndex) {
		return nil
	}
	return m.CreateIndex(&models.User{}, userEmailIndex)
}

// ping checks if database is reachable
func (b *postgresBackend) ping(ctx context.Context) error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// close closes the database connection
func (b *postgresBackend) close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
