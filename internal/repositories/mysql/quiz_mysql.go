package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/AvaneeshKarthiks/FinWise/internal/models"
	"github.com/AvaneeshKarthiks/FinWise/internal/repositories"
)

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) repositories.QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(ctx context.Context, tx *gorm.DB, quiz *models.Quiz) error {
	if err := getDB(r.db, tx).WithContext(ctx).Create(quiz).Error; err != nil {
		return handleDBError(err, "create quiz")
	}
	return nil
}

func (r *quizRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := getDB(r.db, tx).WithContext(ctx).First(&quiz, id).Error; err != nil {
		return nil, handleDBError(err, "get quiz by id")
	}
	return &quiz, nil
}

func (r *quizRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.ListFilters) ([]*models.Quiz, int64, error) {
	db := getDB(r.db, tx)
	var quizzes []*models.Quiz
	var total int64

	query := db.WithContext(ctx).Model(&models.Quiz{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count quizzes")
	}
	if err := applyPagination(query, filters).Order("id DESC").Find(&quizzes).Error; err != nil {
		return nil, 0, handleDBError(err, "list quizzes")
	}
	return quizzes, total, nil
}

func (r *quizRepository) Update(ctx context.Context, tx *gorm.DB, id uint, updates map[string]interface{}) error {
	return updateByID(ctx, getDB(r.db, tx), &models.Quiz{}, id, updates, "update quiz")
}

func (r *quizRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return deleteByID(ctx, getDB(r.db, tx), &models.Quiz{}, id, "delete quiz")
}
