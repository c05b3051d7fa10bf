package database

import (
	"context"
	"fmt"
	"time"

	"quiz-prep/internal/config"
	"quiz-prep/internal/logger"

	_ "github.com/godror/godror"   // Oracle driver (OCI), registered as "godror"
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver (pure Go), registered as "oracle"
	"go.uber.org/zap"
)

// NewSQLXOracleDB opens a pool with the configured Oracle driver and pings it.
func NewSQLXOracleDB(ctx context.Context, dbCfg config.DBConfig, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, dbCfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Oracle database: %w", err)
	}

	if dbCfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(dbCfg.MaxOpenConns)
	}
	if dbCfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(dbCfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping Oracle database: %w", err)
	}

	logger.Get().Info("Connected to Oracle database",
		zap.String("driver", dbCfg.Driver),
		zap.String("host", dbCfg.Host),
		zap.String("service", dbCfg.DBName))
	return db, nil
}
