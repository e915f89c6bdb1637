package pkg

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jpillora/backoff"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AvaneeshKarthiks/FinWise/internal/config"
)

const (
	pingTimeout   = 5 * time.Second
	maxRetryDelay = 30 * time.Second
)

// InitDatabase opens the configured database with retry and pool settings
// and verifies it with a ping.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.Default.LogMode(logger.Silent)
	if cfg.Environment == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	gormConfig := &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	}

	db, err := openWithRetry(func() (*gorm.DB, error) {
		return gorm.Open(dialector, gormConfig)
	}, cfg.Database.ConnectRetries, &backoff.Backoff{
		Min:    time.Second,
		Max:    maxRetryDelay,
		Factor: 2,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Database.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// openWithRetry calls open up to retries times, sleeping boff.Duration()
// between failed attempts.
func openWithRetry(open func() (*gorm.DB, error), retries int, boff *backoff.Backoff) (*gorm.DB, error) {
	if retries < 1 {
		retries = 1
	}

	var err error
	for attempt := 1; attempt <= retries; attempt++ {
		var db *gorm.DB
		db, err = open()
		if err == nil {
			return db, nil
		}
		if attempt < retries {
			time.Sleep(boff.Duration())
		}
	}
	return nil, fmt.Errorf("giving up after %d attempts: %w", retries, err)
}

// Dialector returns the gorm dialector for the configured driver.
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql":
		dsn, err := MySQLDSN(cfg)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(PostgresDSN(cfg)), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// MySQLDSN builds a DSN with parseTime and clientFoundRows enabled so that
// an UPDATE matching a row reports it even when no value changed.
func MySQLDSN(cfg config.DatabaseConfig) (string, error) {
	c := mysqldriver.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	c.DBName = cfg.Name
	c.ParseTime = true
	c.ClientFoundRows = true
	c.Loc = time.UTC
	c.Timeout = 10 * time.Second
	c.ReadTimeout = 30 * time.Second
	c.WriteTimeout = 30 * time.Second
	c.Params = map[string]string{"charset": "utf8mb4"}

	if cfg.Params != "" {
		extra, err := url.ParseQuery(cfg.Params)
		if err != nil {
			return "", fmt.Errorf("invalid DB_PARAMS: %w", err)
		}
		for k := range extra {
			c.Params[k] = extra.Get(k)
		}
	}
	return c.FormatDSN(), nil
}

func PostgresDSN(cfg config.DatabaseConfig) string {
	parts := []string{
		"host=" + cfg.Host,
		"port=" + cfg.Port,
		"user=" + cfg.User,
		"password=" + quoteDSNValue(cfg.Password),
		"dbname=" + cfg.Name,
	}
	if cfg.Params != "" {
		parts = append(parts, strings.Fields(strings.ReplaceAll(cfg.Params, "&", " "))...)
	} else {
		parts = append(parts, "sslmode=disable")
	}
	return strings.Join(parts, " ")
}

// quoteDSNValue single-quotes a keyword/value DSN value so that empty
// values and values with spaces survive parsing.
func quoteDSNValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
