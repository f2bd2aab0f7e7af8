package models

// Record is implemented by every persisted kind. Ids are assigned by the
// caller, never generated by the store.
type Record[T any] interface {
	PrimaryKey() int64
	WithPrimaryKey(id int64) T
	// Field returns the value stored under a column name, or nil for unknown columns
	Field(column string) any
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}
