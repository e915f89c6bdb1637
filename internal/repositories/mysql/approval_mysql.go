package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/AvaneeshKarthiks/FinWise/internal/models"
	"github.com/AvaneeshKarthiks/FinWise/internal/repositories"
)

type approvalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) repositories.ApprovalRepository {
	return &approvalRepository{db: db}
}

// Create appends an audit row. Approvals are never updated.
func (r *approvalRepository) Create(ctx context.Context, tx *gorm.DB, approval *models.Approval) error {
	if err := getDB(r.db, tx).WithContext(ctx).Omit("Volunteer").Create(approval).Error; err != nil {
		return handleDBError(err, "create approval")
	}
	return nil
}

func (r *approvalRepository) ListByVolunteer(ctx context.Context, tx *gorm.DB, volunteerID uint) ([]*models.Approval, error) {
	var approvals []*models.Approval
	if err := getDB(r.db, tx).WithContext(ctx).
		Where("volunteer_id = ?", volunteerID).
		Order("id").
		Find(&approvals).Error; err != nil {
		return nil, handleDBError(err, "list approvals by volunteer")
	}
	return approvals, nil
}
