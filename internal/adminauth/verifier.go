package adminauth

import (
	"context"

	"github.com/recordkit/recordsvc/internal/config"
	"github.com/recordkit/recordsvc/pkg/middleware"
)

// FromConfig picks the verifier for the admin API. A nil verifier with a
// nil error means the admin API is unprotected.
func FromConfig(ctx context.Context, cfg config.AdminConfig) (middleware.Verifier, error) {
	switch {
	case cfg.JWTSecret != "":
		v, err := NewHS256Verifier(cfg.JWTSecret)
		if err != nil {
			return nil, err
		}
		return v, nil
	case cfg.OIDCIssuer != "" && cfg.OIDCClientID != "":
		v, err := NewOIDCVerifier(ctx, cfg.OIDCIssuer, cfg.OIDCClientID)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, nil
}
