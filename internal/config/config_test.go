package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "development defaults pass",
			config: Config{Port: "8000", JWTSecret: "dev-secret-change-in-production", Env: "development"},
		},
		{
			name:    "missing port",
			config:  Config{JWTSecret: "secret"},
			wantErr: "PORT is required",
		},
		{
			name:    "missing secret",
			config:  Config{Port: "8000"},
			wantErr: "JWT_SECRET is required",
		},
		{
			name:    "default secret rejected in production",
			config:  Config{Port: "8000", JWTSecret: "dev-secret-change-in-production", Env: "production"},
			wantErr: "must be changed",
		},
		{
			name:    "short secret rejected in production",
			config:  Config{Port: "8000", JWTSecret: "short", Env: "prod"},
			wantErr: "at least 32 characters",
		},
		{
			name:   "long secret passes in production",
			config: Config{Port: "8000", JWTSecret: strings.Repeat("x", 32), Env: "production"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
