package services

import (
	"errors"

	"github.com/AvaneeshKarthiks/FinWise/internal/repositories"
)

// Domain errors. Their messages are returned to clients as-is.
var (
	ErrBlogNotFound      = errors.New("blog not found")
	ErrCourseNotFound    = errors.New("course not found")
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrVolunteerNotFound = errors.New("volunteer not found")

	ErrSlugTaken  = errors.New("slug already exists")
	ErrEmailTaken = errors.New("email already exists")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotApproved        = errors.New("account not approved yet")
)

// StorageError is an unexpected repository failure. Its message is the
// underlying error's message.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsConnection reports whether the failure was losing the database.
func (e *StorageError) IsConnection() bool {
	return errors.Is(e.Err, repositories.ErrConnection)
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// mapRepoError converts repository sentinels into domain errors. Errors
// that are already domain or validation errors pass through.
func mapRepoError(op string, err error, notFound, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && errors.Is(err, repositories.ErrNotFound):
		return notFound
	case duplicate != nil && errors.Is(err, repositories.ErrDuplicate):
		return duplicate
	}

	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return err
	}
	return NewStorageError(op, err)
}
