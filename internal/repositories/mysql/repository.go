package mysql

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/AvaneeshKarthiks/FinWise/internal/cache"
	"github.com/AvaneeshKarthiks/FinWise/internal/models"
	"github.com/AvaneeshKarthiks/FinWise/internal/repositories"
)

// SQLRepository implements repositories.Repository over gorm. It runs on
// any gorm dialect; MySQL is the production target.
type SQLRepository struct {
	db          *gorm.DB
	redisClient *redis.Client
	redisHealth *cache.CacheHelper

	blog      repositories.BlogRepository
	course    repositories.CourseRepository
	quiz      repositories.QuizRepository
	employee  repositories.EmployeeRepository
	volunteer repositories.VolunteerRepository
	approval  repositories.ApprovalRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	DB *gorm.DB
	// RedisClient is optional; when set it is included in health checks.
	RedisClient *redis.Client
}

func NewSQLRepository(config RepositoryConfig) repositories.Repository {
	return newSQLRepository(config.DB, config.RedisClient)
}

func newSQLRepository(db *gorm.DB, redisClient *redis.Client) *SQLRepository {
	var redisHealth *cache.CacheHelper
	if redisClient != nil {
		redisHealth = cache.NewCacheHelper(redisClient, "")
	}
	return &SQLRepository{
		db:          db,
		redisClient: redisClient,
		redisHealth: redisHealth,
		blog:        NewBlogRepository(db),
		course:      NewCourseRepository(db),
		quiz:        NewQuizRepository(db),
		employee:    NewEmployeeRepository(db),
		volunteer:   NewVolunteerRepository(db),
		approval:    NewApprovalRepository(db),
	}
}

func (r *SQLRepository) Blog() repositories.BlogRepository           { return r.blog }
func (r *SQLRepository) Course() repositories.CourseRepository       { return r.course }
func (r *SQLRepository) Quiz() repositories.QuizRepository           { return r.quiz }
func (r *SQLRepository) Employee() repositories.EmployeeRepository   { return r.employee }
func (r *SQLRepository) Volunteer() repositories.VolunteerRepository { return r.volunteer }
func (r *SQLRepository) Approval() repositories.ApprovalRepository   { return r.approval }

// WithTransaction executes fn with every repository bound to one transaction.
func (r *SQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newSQLRepository(tx, r.redisClient))
	})
}

// Ping checks the database and, when configured, Redis.
func (r *SQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if r.redisHealth != nil {
		if err := r.redisHealth.HealthCheck(ctx); err != nil {
			return fmt.Errorf("redis ping failed: %w", err)
		}
	}
	return nil
}

func (r *SQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}
	return nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// RepositoryManager implements repositories.RepositoryManager
type RepositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &RepositoryManager{config: config}
}

// Initialize verifies the connections and builds the repository.
func (rm *RepositoryManager) Initialize() error {
	if rm.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	repo := NewSQLRepository(rm.config)
	if err := repo.Ping(ctx); err != nil {
		return err
	}
	rm.repo = repo
	return nil
}

func (rm *RepositoryManager) GetRepository() repositories.Repository {
	return rm.repo
}

func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	if rm.repo == nil {
		return fmt.Errorf("repository not initialized")
	}
	return rm.repo.Ping(ctx)
}

func (rm *RepositoryManager) Shutdown(ctx context.Context) error {
	if rm.repo == nil {
		return nil
	}
	return rm.repo.Close()
}
