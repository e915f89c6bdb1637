package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/AvaneeshKarthiks/FinWise/internal/models"
	"github.com/AvaneeshKarthiks/FinWise/internal/repositories"
)

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) repositories.CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	if err := getDB(r.db, tx).WithContext(ctx).Create(course).Error; err != nil {
		return handleDBError(err, "create course")
	}
	return nil
}

func (r *courseRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	var course models.Course
	if err := getDB(r.db, tx).WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, handleDBError(err, "get course by id")
	}
	return &course, nil
}

func (r *courseRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.ListFilters) ([]*models.Course, int64, error) {
	db := getDB(r.db, tx)
	var courses []*models.Course
	var total int64

	query := db.WithContext(ctx).Model(&models.Course{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count courses")
	}
	if err := applyPagination(query, filters).Order("id DESC").Find(&courses).Error; err != nil {
		return nil, 0, handleDBError(err, "list courses")
	}
	return courses, total, nil
}

func (r *courseRepository) Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error {
	return updateByID(ctx, getDB(r.db, tx), &models.Course{}, id, updates, "update course")
}

func (r *courseRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return deleteByID(ctx, getDB(r.db, tx), &models.Course{}, id, "delete course")
}
