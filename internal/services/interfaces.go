package services

import (
	"context"
	"time"

	"github.com/AvaneeshKarthiks/FinWise/internal/models"
	"github.com/AvaneeshKarthiks/FinWise/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

type CreateBlogRequest = validator.BlogCreateRequest
type CreateCourseRequest = validator.CourseCreateRequest
type CreateQuizRequest = validator.QuizCreateRequest
type EmployeeLoginRequest = validator.EmployeeLoginRequest
type VolunteerRegisterRequest = validator.VolunteerRegisterRequest
type VolunteerLoginRequest = validator.VolunteerLoginRequest
type DecisionRequest = validator.ApprovalDecisionRequest
type UpdateRequest = validator.UpdatePayload

type BlogListResponse struct {
	Blogs []*models.Blog `json:"blogs"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

type CourseListResponse struct {
	Courses []*models.Course `json:"courses"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Size    int              `json:"size"`
}

// QuizResponse carries the decoded data document.
type QuizResponse struct {
	ID        uint        `json:"id"`
	Title     *string     `json:"title"`
	Data      interface{} `json:"data"`
	CreatedAt time.Time   `json:"created_at"`
}

type QuizListResponse struct {
	Quizzes []*QuizResponse `json:"quizzes"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Size    int             `json:"size"`
}

type VolunteerListResponse struct {
	Volunteers []*models.Volunteer `json:"volunteers"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	Size       int                 `json:"size"`
}

type RegistrationResult struct {
	VolunteerID uint
	ApprovalID  uint
}

type DecisionResult struct {
	VolunteerID uint
	ApprovalID  uint
	Status      models.ApprovalStatus
}

// ===== SERVICE INTERFACES =====

type BlogService interface {
	Create(ctx context.Context, req *CreateBlogRequest) (*models.Blog, error)
	GetByID(ctx context.Context, id uint) (*models.Blog, error)
	List(ctx context.Context, page, size int) (*BlogListResponse, error)
	Update(ctx context.Context, id uint, req UpdateRequest) error
	Delete(ctx context.Context, id uint) error
}

type CourseService interface {
	Create(ctx context.Context, req *CreateCourseRequest) (*models.Course, error)
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	List(ctx context.Context, page, size int) (*CourseListResponse, error)
	Update(ctx context.Context, id uint, req UpdateRequest) error
	Delete(ctx context.Context, id uint) error
}

type QuizService interface {
	Create(ctx context.Context, req *CreateQuizRequest) (*models.Quiz, error)
	GetByID(ctx context.Context, id uint) (*QuizResponse, error)
	List(ctx context.Context, page, size int) (*QuizListResponse, error)
	Update(ctx context.Context, id uint, req UpdateRequest) error
	Delete(ctx context.Context, id uint) error
}

type EmployeeService interface {
	// Login returns the employee whose stored credential accepts the password.
	Login(ctx context.Context, req *EmployeeLoginRequest) (*models.Employee, error)
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
	// RehashPasswords rewrites plain and untagged credentials in the
	// SHA-256 scheme and returns how many rows were rewritten.
	RehashPasswords(ctx context.Context) (int, error)
}

type VolunteerService interface {
	Register(ctx context.Context, req *VolunteerRegisterRequest) (*RegistrationResult, error)
	Login(ctx context.Context, req *VolunteerLoginRequest) (*models.Volunteer, error)
	Decide(ctx context.Context, req *DecisionRequest) (*DecisionResult, error)
	ListPending(ctx context.Context, page, size int) (*VolunteerListResponse, error)
	ListApprovals(ctx context.Context, volunteerID uint) ([]*models.Approval, error)
}

type ServiceManager interface {
	Initialize(ctx context.Context) error
	Blog() BlogService
	Course() CourseService
	Quiz() QuizService
	Employee() EmployeeService
	Volunteer() VolunteerService
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
