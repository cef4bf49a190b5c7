package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/lib/pq"
)

// CreateDatabase connects to the postgres maintenance database of the
// server named in dsn and creates the target database when it is missing.
func CreateDatabase(ctx context.Context, dsn string) (bool, error) {
	target, adminDSN, err := splitDSN(dsn)
	if err != nil {
		return false, err
	}

	conn, err := sql.Open("postgres", adminDSN)
	if err != nil {
		return false, fmt.Errorf("open maintenance db: %w", err)
	}
	defer conn.Close()

	var exists bool
	if err := conn.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", target,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("lookup database %q: %w", target, err)
	}
	if exists {
		return false, nil
	}

	if _, err := conn.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(target)); err != nil {
		return false, fmt.Errorf("create database %q: %w", target, err)
	}
	return true, nil
}

func splitDSN(dsn string) (string, string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", "", fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", "", fmt.Errorf("createdb needs a postgres:// url, got %q", u.Scheme)
	}
	target := strings.TrimPrefix(u.Path, "/")
	if target == "" {
		return "", "", fmt.Errorf("DATABASE_URL has no database name")
	}
	u.Path = "/postgres"
	return target, u.String(), nil
}
