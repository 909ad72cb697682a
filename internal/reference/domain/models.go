package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Department is an office of the LGU that requests obligations.
type Department struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Code      string       `json:"code" gorm:"type:text;not null;uniqueIndex"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	Head      string       `json:"head,omitempty" gorm:"type:text"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null"`
}

func (Department) TableName() string { return "departments" }

// FiscalYear is a budget year. At most one is open at a time.
type FiscalYear struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Year      int          `json:"year" gorm:"not null;uniqueIndex"`
	StartsOn  time.Time    `json:"starts_on" gorm:"not null"`
	EndsOn    time.Time    `json:"ends_on" gorm:"not null"`
	IsOpen    bool         `json:"is_open" gorm:"column:is_open;not null;default:false"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null"`
}

func (FiscalYear) TableName() string { return "fiscal_years" }

type Employee struct {
	ID           snowflake.ID  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	EmployeeNo   string        `json:"employee_no" gorm:"type:text;not null;uniqueIndex"`
	Name         string        `json:"name" gorm:"type:text;not null"`
	Position     string        `json:"position,omitempty" gorm:"type:text"`
	DepartmentID *snowflake.ID `json:"department_id,omitempty" gorm:"index"`
	TIN          string        `json:"tin,omitempty" gorm:"column:tin;type:text"`
	CreatedAt    time.Time     `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time     `json:"updated_at" gorm:"not null"`
}

func (Employee) TableName() string { return "employees" }

type Vendor struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	TIN       string       `json:"tin,omitempty" gorm:"column:tin;type:text"`
	Address   string       `json:"address,omitempty" gorm:"type:text"`
	ContactNo string       `json:"contact_no,omitempty" gorm:"type:text"`
	Vatable   bool         `json:"vatable" gorm:"not null;default:true"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null"`
}

func (Vendor) TableName() string { return "vendors" }
