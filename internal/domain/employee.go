package domain

import "time"

type EmployeeRole string

const (
	RoleClerk   EmployeeRole = "CLERK"
	RoleManager EmployeeRole = "MANAGER"
	RoleAdmin   EmployeeRole = "ADMIN"
)

type Employee struct {
	ID           int64
	EmployeeID   string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	DateOfBirth  time.Time
	PasswordHash string
	Role         EmployeeRole
	Department   string
	Designation  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func ParseEmployeeRole(raw string) (EmployeeRole, bool) {
	switch EmployeeRole(raw) {
	case RoleClerk, RoleManager, RoleAdmin:
		return EmployeeRole(raw), true
	default:
		return "", false
	}
}

// CanDecideApplication reports whether the role may move a customer
// into a terminal state (APPROVED or REJECTED). Clerks only drive the
// KYC stages.
func (r EmployeeRole) CanDecideApplication() bool {
	return r == RoleManager || r == RoleAdmin
}
