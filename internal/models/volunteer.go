package models

import "time"

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type ApprovalAction string

const (
	ActionApprove ApprovalAction = "approve"
	ActionReject  ApprovalAction = "reject"
)

// Status returns the approval status recorded for the action.
func (a ApprovalAction) Status() ApprovalStatus {
	if a == ActionApprove {
		return ApprovalApproved
	}
	return ApprovalRejected
}

type Volunteer struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	Email      string  `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password   string  `json:"-" gorm:"not null;size:64"` // hex SHA-256
	Name       *string `json:"name" gorm:"size:255"`
	Phone      *string `json:"phone" gorm:"size:32"`
	IsApproved bool    `json:"is_approved" gorm:"not null;default:false"`
}

func (Volunteer) TableName() string {
	return "volunteers"
}

// Approval is an append-only audit record; rows are never updated.
type Approval struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	VolunteerID uint           `json:"volunteer_id" gorm:"not null;index"`
	AdminID     *uint          `json:"admin_id" gorm:"index"`
	Status      ApprovalStatus `json:"status" gorm:"not null;size:16"`
	Comment     *string        `json:"comment" gorm:"type:text"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`

	Volunteer Volunteer `json:"-" gorm:"foreignKey:VolunteerID;constraint:OnDelete:CASCADE"`
}

func (Approval) TableName() string {
	return "approvals"
}

// All returns every persisted model, in dependency order.
func All() []interface{} {
	return []interface{}{
		&Employee{},
		&Blog{},
		&Course{},
		&Quiz{},
		&Volunteer{},
		&Approval{},
	}
}
