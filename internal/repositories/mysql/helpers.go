package mysql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/AvaneeshKarthiks/FinWise/internal/repositories"
)

const (
	mysqlErrDuplicateEntry = 1062
	defaultListLimit       = 10
	maxListLimit           = 100
)

func getDB(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

// handleDBError classifies err into the repository sentinels and wraps it
// with the failing operation.
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", operation, repositories.ErrNotFound)
	case isDuplicateKey(err):
		return fmt.Errorf("%s: %w: %w", operation, repositories.ErrDuplicate, err)
	case isConnectionError(err):
		return fmt.Errorf("%s: %w: %w", operation, repositories.ErrConnection, err)
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDuplicateEntry
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysqldriver.ErrInvalidConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// updateByID applies column updates to one row. Zero matched rows means the
// row does not exist; MySQL reports matched rather than changed rows
// because the DSN sets clientFoundRows.
func updateByID(ctx context.Context, db *gorm.DB, model interface{}, id uint, updates map[string]interface{}, operation string) error {
	result := db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return handleDBError(result.Error, operation)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", operation, repositories.ErrNotFound)
	}
	return nil
}

func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id uint, operation string) error {
	result := db.WithContext(ctx).Delete(model, id)
	if result.Error != nil {
		return handleDBError(result.Error, operation)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", operation, repositories.ErrNotFound)
	}
	return nil
}

func applyPagination(query *gorm.DB, filters repositories.ListFilters) *gorm.DB {
	limit := filters.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}
	return query.Limit(limit).Offset(offset)
}
