package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-admin/models"
)

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

// mysqlParams are the DSN options every connection needs. clientFoundRows makes
// UPDATE report matched rows, so an unchanged row is not mistaken for a missing one.
var mysqlParams = map[string]string{
	"charset":         "utf8mb4",
	"parseTime":       "True",
	"loc":             "UTC",
	"clientFoundRows": "true",
}

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	for key, value := range mysqlParams {
		if q.Get(key) == "" {
			q.Set(key, value)
		}
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, dbName, nil
}

// mysqlDSNFromRaw fills the connection options a driver-format DSN leaves out.
// parseTime and clientFoundRows are always on; the services rely on both.
func mysqlDSNFromRaw(raw string) (string, string, error) {
	cfg, err := mysqldriver.ParseDSN(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse mysql dsn: %w", err)
	}

	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	if cfg.Loc == nil {
		cfg.Loc = time.UTC
	}
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	if _, ok := cfg.Params["charset"]; !ok {
		cfg.Params["charset"] = mysqlParams["charset"]
	}

	dbName := cfg.DBName
	if dbName == "" {
		dbName = strings.TrimSpace(os.Getenv("DB_NAME"))
	}
	return cfg.FormatDSN(), dbName, nil
}

func resolveMySQLDSN() (string, string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return mysqlDSNFromRaw(raw)
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_management")

	q := url.Values{}
	for key, value := range mysqlParams {
		q.Set(key, value)
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, dbName, nil
}

// gormWriter routes gorm's logger output into zap.
type gormWriter struct {
	log *zap.SugaredLogger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Infof(format, args...)
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// ConnectDatabase opens the MySQL pool, configures it and applies migrations.
func ConnectDatabase(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	newLogger := logger.New(
		gormWriter{log: log.Named("gorm").Sugar()},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogLevel(cfg.DBLogLevel),
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(mysql.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger:                 newLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// AutoMigrate in parent->child order
	if err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Room{},
		&models.Facility{},
		&models.Message{},
		&models.Channel{},
		&models.App{},
		&models.Background{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	// rooms saved before mac_key existed; fails on legacy duplicates, which stay unkeyed
	if err := db.Exec("UPDATE rooms SET mac_key = LOWER(TRIM(mac_address)) WHERE mac_key IS NULL AND TRIM(mac_address) <> ''").Error; err != nil {
		log.Warn("backfill room mac keys", zap.Error(err))
	}

	log.Info("database connected", zap.String("database", cfg.DatabaseName))
	return db, nil
}
