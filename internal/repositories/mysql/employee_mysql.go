package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/AvaneeshKarthiks/FinWise/internal/models"
	"github.com/AvaneeshKarthiks/FinWise/internal/repositories"
)

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) repositories.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := getDB(r.db, tx).WithContext(ctx).First(&employee, id).Error; err != nil {
		return nil, handleDBError(err, "get employee by id")
	}
	return &employee, nil
}

func (r *employeeRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.Employee, error) {
	var employee models.Employee
	if err := getDB(r.db, tx).WithContext(ctx).Where("email = ?", email).First(&employee).Error; err != nil {
		return nil, handleDBError(err, "get employee by email")
	}
	return &employee, nil
}

func (r *employeeRepository) ListAll(ctx context.Context, tx *gorm.DB) ([]*models.Employee, error) {
	var employees []*models.Employee
	if err := getDB(r.db, tx).WithContext(ctx).Order("id").Find(&employees).Error; err != nil {
		return nil, handleDBError(err, "list employees")
	}
	return employees, nil
}

func (r *employeeRepository) UpdateCredential(ctx context.Context, tx *gorm.DB, id uint, cred models.Credential) error {
	return updateByID(ctx, getDB(r.db, tx), &models.Employee{}, id, map[string]interface{}{
		"password":        cred.Secret,
		"password_scheme": cred.Scheme,
	}, "update employee credential")
}
