package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // registers "postgres"
)

// NewDBConnection opens the pool for driver ("pgx" or "postgres") and pings it.
func NewDBConnection(ctx context.Context, driver, connString, accessKey string) (*sqlx.DB, error) {
	dsn, err := withAccessKey(connString, accessKey)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s connection: %w", driver, err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// withAccessKey puts the access key in the DSN as the password. URL-style
// and key=value DSNs are both accepted.
func withAccessKey(dsn, accessKey string) (string, error) {
	if accessKey == "" {
		return dsn, nil
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse DATABASE_URL: %w", err)
		}
		user := "postgres"
		if u.User != nil && u.User.Username() != "" {
			user = u.User.Username()
		}
		u.User = url.UserPassword(user, accessKey)
		return u.String(), nil
	}
	return strings.TrimSpace(dsn) + " password='" + dsnQuoter.Replace(accessKey) + "'", nil
}

// dsnQuoter escapes a value for a single-quoted key=value DSN field.
var dsnQuoter = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
