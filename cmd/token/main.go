// Command token prints a bearer token accepted by the API's write endpoints.
package main

import (
	"flag"
	"fmt"
	"time"

	"octofit-tracker/internal/auth"
	"octofit-tracker/internal/config"

	"github.com/sirupsen/logrus"
)

func main() {
	subject := flag.String("sub", "admin@octofit.local", "token subject")
	role := flag.String("role", "admin", "role claim")
	ttl := flag.Duration("ttl", 0, "token lifetime (0 uses JWT_TTL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	authCfg := auth.Config{
		Secret: cfg.Auth.Secret,
		Issuer: cfg.Auth.Issuer,
		TTL:    cfg.Auth.TTL,
	}
	if *ttl > 0 {
		authCfg.TTL = *ttl
	}

	token, err := auth.Issue(authCfg, *subject, *role, time.Now())
	if err != nil {
		logrus.Fatalf("Failed to issue token: %v", err)
	}
	fmt.Println(token)
}
