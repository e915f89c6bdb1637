package services

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/AvaneeshKarthiks/FinWise/internal/models"
	"github.com/AvaneeshKarthiks/FinWise/internal/repositories"
	"github.com/AvaneeshKarthiks/FinWise/internal/validator"
)

type employeeService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewEmployeeService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) EmployeeService {
	return &employeeService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

func (s *employeeService) Login(ctx context.Context, req *EmployeeLoginRequest) (*models.Employee, error) {
	if err := s.validator.GetBusinessValidator().ValidateEmployeeLogin(req); err != nil {
		return nil, err
	}

	employee, err := s.repo.Employee().GetByEmail(ctx, nil, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, mapRepoError("employee login", err, nil, nil)
	}

	if !employee.VerifyPassword(req.Password) {
		s.logger.Warn("Employee login rejected", "employee_id", employee.ID)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("Employee logged in", "employee_id", employee.ID)
	return employee, nil
}

func (s *employeeService) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.repo.Employee().GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapRepoError("get employee", err, ErrEmployeeNotFound, nil)
	}
	return employee, nil
}

// RehashPasswords runs in one transaction so a failure leaves every row
// in its previous scheme.
func (s *employeeService) RehashPasswords(ctx context.Context) (int, error) {
	converted := 0
	err := s.withTx(ctx, func(tx *gorm.DB) error {
		employees, err := s.repo.Employee().ListAll(ctx, tx)
		if err != nil {
			return err
		}
		for _, employee := range employees {
			current := employee.Credential()
			if current.Scheme != models.SchemePlain && employee.PasswordScheme != "" {
				continue
			}
			if err := s.repo.Employee().UpdateCredential(ctx, tx, employee.ID, current.Hashed()); err != nil {
				return err
			}
			converted++
		}
		return nil
	})
	if err != nil {
		return 0, mapRepoError("rehash passwords", err, nil, nil)
	}

	s.logger.Info("Employee passwords rehashed", "converted", converted)
	return converted, nil
}

func (s *employeeService) withTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}
