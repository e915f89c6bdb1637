package services

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/AvaneeshKarthiks/FinWise/internal/events"
	"github.com/AvaneeshKarthiks/FinWise/internal/models"
	"github.com/AvaneeshKarthiks/FinWise/internal/repositories"
	"github.com/AvaneeshKarthiks/FinWise/internal/validator"
)

type volunteerService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewVolunteerService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, eventPublisher events.EventPublisher) VolunteerService {
	return &volunteerService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      validator,
		eventPublisher: eventPublisher,
	}
}

// Register inserts the volunteer and its pending approval in one
// transaction. The password is stored as its SHA-256 digest.
func (s *volunteerService) Register(ctx context.Context, req *VolunteerRegisterRequest) (*RegistrationResult, error) {
	if err := s.validator.GetBusinessValidator().ValidateVolunteerRegister(req); err != nil {
		return nil, err
	}

	volunteer := &models.Volunteer{
		Email:    req.Email,
		Password: models.SHA256Hex(req.Password),
		Name:     req.Name,
		Phone:    req.Phone,
	}
	approval := &models.Approval{
		Status:  models.ApprovalPending,
		Comment: req.InitialComment,
	}

	err := s.withTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Volunteer().Create(ctx, tx, volunteer); err != nil {
			return err
		}
		approval.VolunteerID = volunteer.ID
		return s.repo.Approval().Create(ctx, tx, approval)
	})
	if err != nil {
		return nil, mapRepoError("register volunteer", err, nil, ErrEmailTaken)
	}

	s.logger.Info("Volunteer registered", "volunteer_id", volunteer.ID, "approval_id", approval.ID)
	s.publish(ctx, events.NewEvent(events.TypeVolunteerRegistered, events.VolunteerRegisteredData{
		VolunteerID: volunteer.ID,
		ApprovalID:  approval.ID,
		Email:       volunteer.Email,
	}))

	return &RegistrationResult{VolunteerID: volunteer.ID, ApprovalID: approval.ID}, nil
}

func (s *volunteerService) Login(ctx context.Context, req *VolunteerLoginRequest) (*models.Volunteer, error) {
	if err := s.validator.GetBusinessValidator().ValidateVolunteerLogin(req); err != nil {
		return nil, err
	}

	volunteer, err := s.repo.Volunteer().GetByEmail(ctx, nil, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, mapRepoError("volunteer login", err, nil, nil)
	}

	cred := models.Credential{Scheme: models.SchemeSHA256, Secret: volunteer.Password}
	if !cred.Verify(req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !volunteer.IsApproved {
		return nil, ErrNotApproved
	}

	s.logger.Info("Volunteer logged in", "volunteer_id", volunteer.ID)
	return volunteer, nil
}

// Decide sets the approval flag and appends the audit row in one
// transaction. An unknown volunteer writes nothing.
func (s *volunteerService) Decide(ctx context.Context, req *DecisionRequest) (*DecisionResult, error) {
	action, err := s.validator.GetBusinessValidator().ValidateDecision(req)
	if err != nil {
		return nil, err
	}

	adminID := req.AdminID
	approval := &models.Approval{
		VolunteerID: req.VolunteerID,
		AdminID:     &adminID,
		Status:      action.Status(),
		Comment:     req.Comment,
	}

	err = s.withTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.Volunteer().SetApproved(ctx, tx, req.VolunteerID, action == models.ActionApprove); err != nil {
			return err
		}
		return s.repo.Approval().Create(ctx, tx, approval)
	})
	if err != nil {
		return nil, mapRepoError("decide volunteer", err, ErrVolunteerNotFound, nil)
	}

	s.logger.Info("Volunteer decision recorded",
		"volunteer_id", req.VolunteerID,
		"admin_id", req.AdminID,
		"status", approval.Status,
		"approval_id", approval.ID)
	s.publish(ctx, events.NewEvent(events.TypeVolunteerDecided, events.VolunteerDecidedData{
		VolunteerID: req.VolunteerID,
		ApprovalID:  approval.ID,
		AdminID:     req.AdminID,
		Status:      string(approval.Status),
	}))

	return &DecisionResult{VolunteerID: req.VolunteerID, ApprovalID: approval.ID, Status: approval.Status}, nil
}

func (s *volunteerService) ListPending(ctx context.Context, page, size int) (*VolunteerListResponse, error) {
	filters, page, size := pageFilters(page, size)
	volunteers, total, err := s.repo.Volunteer().ListPending(ctx, nil, filters)
	if err != nil {
		return nil, mapRepoError("list pending volunteers", err, nil, nil)
	}
	if volunteers == nil {
		volunteers = []*models.Volunteer{}
	}
	return &VolunteerListResponse{Volunteers: volunteers, Total: total, Page: page, Size: size}, nil
}

func (s *volunteerService) ListApprovals(ctx context.Context, volunteerID uint) ([]*models.Approval, error) {
	if _, err := s.repo.Volunteer().GetByID(ctx, nil, volunteerID); err != nil {
		return nil, mapRepoError("get volunteer", err, ErrVolunteerNotFound, nil)
	}

	approvals, err := s.repo.Approval().ListByVolunteer(ctx, nil, volunteerID)
	if err != nil {
		return nil, mapRepoError("list approvals", err, nil, nil)
	}
	if approvals == nil {
		approvals = []*models.Approval{}
	}
	return approvals, nil
}

// publish runs after commit; a failure is logged and never fails the call.
func (s *volunteerService) publish(ctx context.Context, event *events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.PublishEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", "type", event.Type, "event_id", event.ID, "error", err)
	}
}

func (s *volunteerService) withTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}
