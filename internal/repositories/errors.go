package repositories

import "errors"

// Storage failures are classified into these sentinels; callers match them
// with errors.Is. The driver error stays in the chain.
var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate key")
	ErrConnection = errors.New("database connection error")
)
