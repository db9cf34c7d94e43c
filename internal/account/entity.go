// AngelaMos | 2026
// entity.go

package account

import (
	"time"
)

// Role tags which profile table completes a login row. Exactly one profile
// row exists per account, selected by this value; the three kinds never
// coexist for one identity.
type Role int16

const (
	RoleCustomer Role = 1
	RoleEmployee Role = 2
	RoleManager  Role = 3
)

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleEmployee:
		return "employee"
	case RoleManager:
		return "manager"
	default:
		return "unknown"
	}
}

// ProfileTable returns the table holding the profile row for this role.
// The second return is false for role values with no known profile kind;
// callers treat that as a data-integrity gap, not an error.
func (r Role) ProfileTable() (string, bool) {
	switch r {
	case RoleCustomer:
		return "customer", true
	case RoleEmployee:
		return "employee", true
	case RoleManager:
		return "manager", true
	default:
		return "", false
	}
}

type LoginRecord struct {
	ID        int64      `db:"id"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	Phone     *string    `db:"phone"`
	Role      Role       `db:"role_id"`
	CreatedAt time.Time  `db:"createdat"`
	UpdatedAt *time.Time `db:"updatedat"`
}

type CustomerProfile struct {
	UserID   int64      `db:"user_id"`
	Fullname string     `db:"fullname"`
	Address  *string    `db:"address"`
	DOB      *time.Time `db:"dob"`
}

type EmployeeProfile struct {
	UserID     int64      `db:"user_id"`
	Fullname   string     `db:"fullname"`
	Address    *string    `db:"address"`
	DOB        *time.Time `db:"dob"`
	HireDate   *time.Time `db:"hire_date"`
	Avatar     *string    `db:"avatar"`
	Department *string    `db:"department"`
	Email      *string    `db:"email"`
}

type ManagerProfile struct {
	UserID     int64      `db:"user_id"`
	Fullname   string     `db:"fullname"`
	Address    *string    `db:"address"`
	DOB        *time.Time `db:"dob"`
	Avatar     *string    `db:"avatar"`
	Department *string    `db:"department"`
}
