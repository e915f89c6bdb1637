package repositories

import "context"

// Repository groups every repository behind one handle.
type Repository interface {
	Blog() BlogRepository
	Course() CourseRepository
	Quiz() QuizRepository

	Employee() EmployeeRepository
	Volunteer() VolunteerRepository
	Approval() ApprovalRepository

	// WithTransaction runs fn with repositories bound to one transaction.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
