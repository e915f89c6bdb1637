package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/AvaneeshKarthiks/FinWise/internal/models"
	"github.com/AvaneeshKarthiks/FinWise/internal/repositories"
)

type volunteerRepository struct {
	db *gorm.DB
}

func NewVolunteerRepository(db *gorm.DB) repositories.VolunteerRepository {
	return &volunteerRepository{db: db}
}

func (r *volunteerRepository) Create(ctx context.Context, tx *gorm.DB, volunteer *models.Volunteer) error {
	if err := getDB(r.db, tx).WithContext(ctx).Create(volunteer).Error; err != nil {
		return handleDBError(err, "create volunteer")
	}
	return nil
}

func (r *volunteerRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Volunteer, error) {
	var volunteer models.Volunteer
	if err := getDB(r.db, tx).WithContext(ctx).First(&volunteer, id).Error; err != nil {
		return nil, handleDBError(err, "get volunteer by id")
	}
	return &volunteer, nil
}

func (r *volunteerRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.Volunteer, error) {
	var volunteer models.Volunteer
	if err := getDB(r.db, tx).WithContext(ctx).Where("email = ?", email).First(&volunteer).Error; err != nil {
		return nil, handleDBError(err, "get volunteer by email")
	}
	return &volunteer, nil
}

// SetApproved flips the approval flag. The UPDATE row lock serializes
// concurrent decisions on the same volunteer within their transactions.
func (r *volunteerRepository) SetApproved(ctx context.Context, tx *gorm.DB, id uint, approved bool) error {
	return updateByID(ctx, getDB(r.db, tx), &models.Volunteer{}, id,
		map[string]interface{}{"is_approved": approved}, "set volunteer approval")
}

// ListPending returns volunteers whose most recent approval row is pending.
func (r *volunteerRepository) ListPending(ctx context.Context, tx *gorm.DB, filters repositories.ListFilters) ([]*models.Volunteer, int64, error) {
	db := getDB(r.db, tx)
	var volunteers []*models.Volunteer
	var total int64

	latest := db.Model(&models.Approval{}).
		Select("MAX(id)").
		Group("volunteer_id")

	query := db.WithContext(ctx).
		Model(&models.Volunteer{}).
		Joins("JOIN approvals ON approvals.volunteer_id = volunteers.id").
		Where("approvals.id IN (?)", latest).
		Where("approvals.status = ?", models.ApprovalPending)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count pending volunteers")
	}
	if err := applyPagination(query, filters).
		Select("volunteers.*").
		Order("volunteers.id").
		Find(&volunteers).Error; err != nil {
		return nil, 0, handleDBError(err, "list pending volunteers")
	}
	return volunteers, total, nil
}
