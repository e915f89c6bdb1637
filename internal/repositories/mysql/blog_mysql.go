package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/AvaneeshKarthiks/FinWise/internal/models"
	"github.com/AvaneeshKarthiks/FinWise/internal/repositories"
)

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) repositories.BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, tx *gorm.DB, blog *models.Blog) error {
	if err := getDB(r.db, tx).WithContext(ctx).Create(blog).Error; err != nil {
		return handleDBError(err, "create blog")
	}
	return nil
}

func (r *blogRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Blog, error) {
	var blog models.Blog
	if err := getDB(r.db, tx).WithContext(ctx).First(&blog, id).Error; err != nil {
		return nil, handleDBError(err, "get blog by id")
	}
	return &blog, nil
}

func (r *blogRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.ListFilters) ([]*models.Blog, int64, error) {
	db := getDB(r.db, tx)
	var blogs []*models.Blog
	var total int64

	query := db.WithContext(ctx).Model(&models.Blog{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count blogs")
	}
	if err := applyPagination(query, filters).Order("id DESC").Find(&blogs).Error; err != nil {
		return nil, 0, handleDBError(err, "list blogs")
	}
	return blogs, total, nil
}

func (r *blogRepository) Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error {
	return updateByID(ctx, getDB(r.db, tx), &models.Blog{}, id, updates, "update blog")
}

func (r *blogRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return deleteByID(ctx, getDB(r.db, tx), &models.Blog{}, id, "delete blog")
}
