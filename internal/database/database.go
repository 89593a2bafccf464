package database

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"catalogo/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// rootCertFile is the libpq-conventional name of the materialized TLS root
// certificate.
const rootCertFile = "root.crt"

// MaterializeRootCert decodes a base64-encoded TLS root certificate and
// writes it to dir/root.crt, creating dir if needed. The write is idempotent;
// repeated calls simply overwrite the file. It returns the path of the
// written certificate.
func MaterializeRootCert(certBase64, dir string) (string, error) {
	if certBase64 == "" {
		return "", fmt.Errorf("root certificate value is empty")
	}

	certBytes, err := base64.StdEncoding.DecodeString(certBase64)
	if err != nil {
		return "", fmt.Errorf("failed to decode root certificate: %w", err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create certificate directory: %w", err)
	}

	certPath := filepath.Join(dir, rootCertFile)
	if err := os.WriteFile(certPath, certBytes, 0o600); err != nil {
		return "", fmt.Errorf("failed to write root certificate: %w", err)
	}

	return certPath, nil
}

// ConnString returns the connection string for the given configuration. In
// production mode the TLS root certificate is materialized first and the
// string gains sslrootcert and sslmode=verify-full parameters.
func ConnString(cfg config.DatabaseConfig) (string, error) {
	if !cfg.Production {
		return cfg.URL, nil
	}

	certPath, err := MaterializeRootCert(cfg.RootCertBase64, cfg.CertDir)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(cfg.URL)
	if err != nil {
		return "", fmt.Errorf("failed to parse database URL: %w", err)
	}

	q := u.Query()
	q.Set("sslrootcert", certPath)
	q.Set("sslmode", "verify-full")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// NewPool creates a new PostgreSQL connection pool and verifies connectivity.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	connString, err := ConnString(cfg)
	if err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// Configure pool settings
	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	logger.Info().
		Bool("production", cfg.Production).
		Int("max_connections", cfg.MaxConnections).
		Int("min_connections", cfg.MinConnections).
		Msg("creating database connection pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("database connection pool created successfully")

	return pool, nil
}
