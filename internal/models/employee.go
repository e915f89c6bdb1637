package models

import "time"

type Employee struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Email          string         `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password       string         `json:"-" gorm:"not null;size:255"`
	PasswordScheme PasswordScheme `json:"-" gorm:"size:16;default:''"`
	Name           *string        `json:"name" gorm:"size:255"`
	Role           *string        `json:"role" gorm:"size:64"`
	Phone          *string        `json:"phone" gorm:"size:32"`
	CreatedAt      time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

func (Employee) TableName() string {
	return "employees"
}

// Credential returns the tagged credential stored for this employee.
func (e *Employee) Credential() Credential {
	return ParseCredential(e.Password, e.PasswordScheme)
}

// VerifyPassword checks password against the stored credential. Rows with
// no scheme tag accept either the literal value or its SHA-256 digest.
func (e *Employee) VerifyPassword(password string) bool {
	if e.PasswordScheme != "" {
		return e.Credential().Verify(password)
	}
	plain := Credential{Scheme: SchemePlain, Secret: e.Password}
	hashed := Credential{Scheme: SchemeSHA256, Secret: e.Password}
	return hashed.Verify(password) || plain.Verify(password)
}
