package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"github.com/AvaneeshKarthiks/FinWise/internal/events"
	"github.com/AvaneeshKarthiks/FinWise/internal/repositories"
	"github.com/AvaneeshKarthiks/FinWise/internal/validator"
)

// serviceManager implements ServiceManager interface
type serviceManager struct {
	db             *gorm.DB
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher

	blogService      BlogService
	courseService    CourseService
	quizService      QuizService
	employeeService  EmployeeService
	volunteerService VolunteerService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager. eventPublisher may be nil,
// in which case volunteer events are not published.
func NewServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, eventPublisher events.EventPublisher) ServiceManager {
	return &serviceManager{
		db:             db,
		repo:           repo,
		logger:         logger,
		validator:      validator,
		eventPublisher: eventPublisher,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if sm.db == nil || sm.repo == nil {
		return fmt.Errorf("service manager requires a database and repository")
	}

	sm.blogService = NewBlogService(sm.repo, sm.db, sm.logger, sm.validator)
	sm.courseService = NewCourseService(sm.repo, sm.db, sm.logger, sm.validator)
	sm.quizService = NewQuizService(sm.repo, sm.db, sm.logger, sm.validator)
	sm.employeeService = NewEmployeeService(sm.repo, sm.db, sm.logger, sm.validator)
	sm.volunteerService = NewVolunteerService(sm.repo, sm.db, sm.logger, sm.validator, sm.eventPublisher)

	sm.initialized = true
	sm.logger.Debug("Service manager initialized")
	return nil
}

func (sm *serviceManager) Blog() BlogService {
	sm.mustBeInitialized()
	return sm.blogService
}

func (sm *serviceManager) Course() CourseService {
	sm.mustBeInitialized()
	return sm.courseService
}

func (sm *serviceManager) Quiz() QuizService {
	sm.mustBeInitialized()
	return sm.quizService
}

func (sm *serviceManager) Employee() EmployeeService {
	sm.mustBeInitialized()
	return sm.employeeService
}

func (sm *serviceManager) Volunteer() VolunteerService {
	sm.mustBeInitialized()
	return sm.volunteerService
}

func (sm *serviceManager) mustBeInitialized() {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
}

// HealthCheck pings the storage behind the services.
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}
	return sm.repo.Ping(ctx)
}

// Shutdown closes the event publisher. The database is owned by the caller.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}
	sm.shutdown = true

	if sm.eventPublisher != nil {
		if err := sm.eventPublisher.Close(); err != nil {
			return fmt.Errorf("failed to close event publisher: %w", err)
		}
	}
	sm.logger.Info("Service manager shut down")
	return nil
}
