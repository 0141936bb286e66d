package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrDepartmentNotFound = errors.New("department not found")

type Department struct {
	ID          uuid.UUID  `json:"id" db:"department_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Email       *string    `json:"email,omitempty" db:"email"`
	Phone       *string    `json:"phone,omitempty" db:"phone"`
	ManagerID   *uuid.UUID `json:"manager_id,omitempty" db:"manager_id"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// SeedDepartments is the fixed directory inserted on first startup.
var SeedDepartments = []Department{
	{Name: "Roads & Transport", Description: "Road maintenance and transportation issues"},
	{Name: "Water & Sanitation", Description: "Water supply and sanitation services"},
	{Name: "Waste Management", Description: "Waste collection and management"},
	{Name: "Electricity", Description: "Power supply and electrical infrastructure"},
	{Name: "Education", Description: "Schools and educational facilities"},
	{Name: "Health", Description: "Healthcare facilities and services"},
}
