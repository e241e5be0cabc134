// Package database opens the MySQL connection pool backing the durable
// order ledger.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Pool bounds the ledger connection pool.  On-sale traffic concentrates
// many short transactions on the stock table, so MaxOpen is the main
// throughput knob; zero-valued fields fall back to modest defaults.
type Pool struct {
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

func (p Pool) withDefaults() Pool {
	if p.MaxOpen <= 0 {
		p.MaxOpen = 50
	}
	if p.MaxIdle <= 0 {
		p.MaxIdle = 10
	}
	if p.ConnMaxLifetime <= 0 {
		p.ConnMaxLifetime = 15 * time.Minute
	}
	return p
}

// Open connects to the ledger database and verifies the connection before
// returning the pool.
func Open(user, pass, host, port, name string, pool Pool) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime so updated_at scans into time.Time; loc=UTC matches the
	// timestamp format of the exported ledger.
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	pool = pool.withDefaults()
	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping ledger: %w", err)
	}
	return db, nil
}
