package db

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fitcrew/rollcall/internal/config"
	gsqlite "github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormprometheus "gorm.io/plugin/prometheus"
)

// Module provides the shared gorm connection.
var Module = fx.Provide(New)

// New opens the configured database and applies pool settings.
func New(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetime) * time.Second)

	if err := registerMetricsPlugin(conn, cfg.DBName); err != nil {
		return nil, err
	}

	log.Info("database connected",
		zap.String("type", cfg.DBType),
		zap.String("name", cfg.DBName),
	)
	return conn, nil
}

// registerMetricsPlugin exposes connection pool stats on the default
// prometheus registry, alongside the application counters.
func registerMetricsPlugin(conn *gorm.DB, dbName string) error {
	return conn.Use(gormprometheus.New(gormprometheus.Config{
		DBName:          dbName,
		RefreshInterval: 15,
	}))
}

var testSeq atomic.Int64

// NewTest opens an isolated in-memory sqlite database for tests. Each call
// gets its own named database so the connection pool sees one schema.
func NewTest() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:rollcall_test_%d?mode=memory&cache=shared", testSeq.Add(1))
	return gorm.Open(gsqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
}
