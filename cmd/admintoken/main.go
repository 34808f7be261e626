// Command admintoken prints an HS256 bearer token for the admin API,
// signed with ADMIN_JWT_SECRET.
package main

import (
	"flag"
	"fmt"

	"github.com/recordkit/recordsvc/internal/adminauth"
	"github.com/recordkit/recordsvc/internal/config"
	"github.com/recordkit/recordsvc/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)

	sub := flag.String("sub", "admin", "token subject")
	ttl := flag.Duration("ttl", cfg.Admin.TokenTTL, "token lifetime")
	flag.Parse()

	if cfg.Admin.JWTSecret == "" {
		logger.Fatalf("ADMIN_JWT_SECRET is not set")
	}
	tok, err := adminauth.Issue(cfg.Admin.JWTSecret, *sub, *ttl)
	if err != nil {
		logger.Fatalf("failed to sign token: %v", err)
	}
	fmt.Println(tok)
}
