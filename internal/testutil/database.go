// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AvaneeshKarthiks/FinWise/internal/models"
)

// NewTestDB opens a migrated in-memory sqlite database private to the test.
// The pool is capped at one connection so the memory database is shared
// by every statement.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// SeedEmployee inserts an employee with the given stored password and scheme.
func SeedEmployee(t testing.TB, db *gorm.DB, email, password string, scheme models.PasswordScheme) *models.Employee {
	t.Helper()

	name := "Employee " + email
	role := "admin"
	employee := &models.Employee{
		Email:          email,
		Password:       password,
		PasswordScheme: scheme,
		Name:           &name,
		Role:           &role,
	}
	require.NoError(t, db.Create(employee).Error)
	return employee
}

func StrPtr(s string) *string { return &s }
