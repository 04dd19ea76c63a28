// Package database opens the ClickHouse connection shared by the job
// store and the schema migrator.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"
)

const (
	defaultDialTimeout  = 30 * time.Second
	defaultQueryTimeout = time.Minute
)

// Options configures the ClickHouse client. Zero timeouts fall back to
// the package defaults.
type Options struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	DialTimeout     time.Duration
	QueryTimeout    time.Duration
	Username        string
	Password        string
	Database        string
}

type Database struct {
	conn   clickhouse.Conn
	logger *zap.Logger
}

// New opens a native-protocol connection and verifies it with a ping.
func New(ctx context.Context, opts Options, logger *zap.Logger) (*Database, error) {
	conn, err := clickhouse.Open(clientOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("failed to create clickhouse connection: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	logger.Info("connected to clickhouse",
		zap.String("database", opts.Database),
		zap.Int("max_open_conns", opts.MaxOpenConns))

	return &Database{
		conn:   conn,
		logger: logger,
	}, nil
}

func clientOptions(opts Options) *clickhouse.Options {
	// The DSN may carry query params; only the host:port part matters
	// for the native protocol.
	host := strings.Split(opts.DSN, "?")[0]

	dialTimeout := opts.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}
	queryTimeout := opts.QueryTimeout
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}

	return &clickhouse.Options{
		Protocol: clickhouse.Native,
		Addr:     []string{host},
		Settings: clickhouse.Settings{
			"max_execution_time": int(queryTimeout.Seconds()),
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		Auth: clickhouse.Auth{
			Database: opts.Database,
			Username: opts.Username,
			Password: opts.Password,
		},
		DialTimeout:     dialTimeout,
		MaxOpenConns:    opts.MaxOpenConns,
		MaxIdleConns:    opts.MaxIdleConns,
		ConnMaxLifetime: opts.ConnMaxLifetime,
	}
}

func (db *Database) Close() error {
	return db.conn.Close()
}

func (db *Database) Conn() clickhouse.Conn {
	return db.conn
}
