package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/AvaneeshKarthiks/FinWise/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

// ListFilters selects one page of rows ordered by id.
type ListFilters struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ===== CONTENT REPOSITORIES =====

type BlogRepository interface {
	Create(ctx context.Context, tx *gorm.DB, blog *models.Blog) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Blog, error)
	List(ctx context.Context, tx *gorm.DB, filters ListFilters) ([]*models.Blog, int64, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type CourseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, course *models.Course) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error)
	List(ctx context.Context, tx *gorm.DB, filters ListFilters) ([]*models.Course, int64, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type QuizRepository interface {
	Create(ctx context.Context, tx *gorm.DB, quiz *models.Quiz) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error)
	List(ctx context.Context, tx *gorm.DB, filters ListFilters) ([]*models.Quiz, int64, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

// ===== IDENTITY REPOSITORIES =====

type EmployeeRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Employee, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.Employee, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*models.Employee, error)
	UpdateCredential(ctx context.Context, tx *gorm.DB, id uint, cred models.Credential) error
}

type VolunteerRepository interface {
	Create(ctx context.Context, tx *gorm.DB, volunteer *models.Volunteer) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Volunteer, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.Volunteer, error)
	SetApproved(ctx context.Context, tx *gorm.DB, id uint, approved bool) error
	ListPending(ctx context.Context, tx *gorm.DB, filters ListFilters) ([]*models.Volunteer, int64, error)
}

type ApprovalRepository interface {
	Create(ctx context.Context, tx *gorm.DB, approval *models.Approval) error
	ListByVolunteer(ctx context.Context, tx *gorm.DB, volunteerID uint) ([]*models.Approval, error)
}
