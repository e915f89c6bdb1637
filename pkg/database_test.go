package pkg

import (
	"errors"
	"strings"
	"testing"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jpillora/backoff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AvaneeshKarthiks/FinWise/internal/config"
)

func testDatabaseConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:   "mysql",
		Host:     "db.internal",
		Port:     "3306",
		User:     "finwise",
		Password: "s3cret",
		Name:     "finwise",
	}
}

func TestMySQLDSN(t *testing.T) {
	dsn, err := MySQLDSN(testDatabaseConfig())
	require.NoError(t, err)

	parsed, err := mysqldriver.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "finwise", parsed.User)
	assert.Equal(t, "s3cret", parsed.Passwd)
	assert.Equal(t, "db.internal:3306", parsed.Addr)
	assert.Equal(t, "finwise", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.True(t, parsed.ClientFoundRows)
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestMySQLDSNExtraParams(t *testing.T) {
	cfg := testDatabaseConfig()
	cfg.Params = "tls=true&charset=latin1"

	dsn, err := MySQLDSN(cfg)
	require.NoError(t, err)

	assert.Contains(t, dsn, "tls=true")
	assert.Contains(t, dsn, "charset=latin1")
	assert.NotContains(t, dsn, "utf8mb4")
}

func TestMySQLDSNInvalidParams(t *testing.T) {
	cfg := testDatabaseConfig()
	cfg.Params = "%zz"

	_, err := MySQLDSN(cfg)
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := testDatabaseConfig()
	cfg.Driver = "postgres"
	cfg.Port = "5432"

	dsn := PostgresDSN(cfg)
	assert.True(t, strings.HasPrefix(dsn, "host=db.internal port=5432"))
	assert.Contains(t, dsn, "sslmode=disable")

	cfg.Params = "sslmode=require&connect_timeout=5"
	dsn = PostgresDSN(cfg)
	assert.Contains(t, dsn, "sslmode=require")
	assert.Contains(t, dsn, "connect_timeout=5")

	cfg.Password = ""
	assert.Contains(t, PostgresDSN(cfg), "password='' dbname=")

	cfg.Password = `it's a\pass`
	assert.Contains(t, PostgresDSN(cfg), `password='it\'s a\\pass'`)
}

func TestDialectorUnsupported(t *testing.T) {
	cfg := testDatabaseConfig()
	cfg.Driver = "oracle"

	_, err := Dialector(cfg)
	assert.Error(t, err)
}

func TestOpenWithRetry(t *testing.T) {
	boff := &backoff.Backoff{Min: time.Millisecond, Max: 2 * time.Millisecond, Factor: 2}
	refused := errors.New("connection refused")

	calls := 0
	db, err := openWithRetry(func() (*gorm.DB, error) {
		calls++
		if calls < 3 {
			return nil, refused
		}
		return &gorm.DB{}, nil
	}, 5, boff)
	require.NoError(t, err)
	assert.NotNil(t, db)
	assert.Equal(t, 3, calls)

	boff.Reset()
	calls = 0
	_, err = openWithRetry(func() (*gorm.DB, error) {
		calls++
		return nil, refused
	}, 2, boff)
	assert.ErrorIs(t, err, refused)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Equal(t, 2, calls)

	calls = 0
	_, err = openWithRetry(func() (*gorm.DB, error) {
		calls++
		return nil, refused
	}, 0, boff)
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
