// Package ratecache persists conversion rate answers in a local SQLite
// database. Historical rates never change, so a cached answer is valid
// forever; only the upstream provider is consulted on a miss.
package ratecache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	cryptotracker "github.com/XMabbX/CryptoTracker"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS rates (
	from_tick TEXT NOT NULL,
	to_tick   TEXT NOT NULL,
	at_unix   INTEGER NOT NULL,
	rate      TEXT NOT NULL,
	PRIMARY KEY (from_tick, to_tick, at_unix)
);`

// Cache is a cryptotracker.RateProvider that memoizes another
// provider's answers. Rates are stored as their exact decimal string,
// keyed to the microsecond.
type Cache struct {
	db   *sql.DB
	next cryptotracker.RateProvider
}

// Open creates or opens the cache database at path, decorating next.
func Open(path string, next cryptotracker.RateProvider) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create rates table: %w", err)
	}
	return &Cache{db: db, next: next}, nil
}

func (c *Cache) Close() error { return c.db.Close() }

// ConversionRate implements cryptotracker.RateProvider. Upstream
// "no market data" answers are not cached: the upstream may learn the
// pair later.
func (c *Cache) ConversionRate(ctx context.Context, from, to string, at time.Time) (cryptotracker.Money, error) {
	key := at.UTC().UnixMicro()

	var stored string
	err := c.db.QueryRowContext(ctx,
		`SELECT rate FROM rates WHERE from_tick = ? AND to_tick = ? AND at_unix = ?`,
		from, to, key).Scan(&stored)
	switch {
	case err == nil:
		q, err := cryptotracker.ParseQuantity(stored)
		if err != nil {
			return cryptotracker.Money{}, fmt.Errorf("corrupt cached rate %q for %s/%s: %w", stored, from, to, err)
		}
		return cryptotracker.M(1, to).Mul(q), nil
	case !errors.Is(err, sql.ErrNoRows):
		return cryptotracker.Money{}, err
	}

	rate, err := c.next.ConversionRate(ctx, from, to, at)
	if err != nil {
		return cryptotracker.Money{}, err
	}
	if _, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO rates (from_tick, to_tick, at_unix, rate) VALUES (?, ?, ?, ?)`,
		from, to, key, rate.Amount()); err != nil {
		return cryptotracker.Money{}, fmt.Errorf("could not store rate for %s/%s: %w", from, to, err)
	}
	return rate, nil
}
