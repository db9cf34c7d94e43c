// AngelaMos | 2026
// dto.go

package account

import (
	"time"
)

const unknownFullname = "Unknown"

// Identity is the flattened login+profile view used by authentication flows.
type Identity struct {
	ID       int64  `json:"id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}

// CustomerView is the read-side projection behind the customer profile page.
// It tolerates a missing customer row rather than failing.
type CustomerView struct {
	ID       int64      `json:"id"`
	Fullname string     `json:"fullname"`
	Email    string     `json:"email"`
	Phone    *string    `json:"phone"`
	Address  *string    `json:"address"`
	DOB      *time.Time `json:"dob"`
	Role     Role       `json:"role"`
}

// newCustomerView merges the login projection with an optional customer
// profile row. A nil profile yields the "Unknown" sentinel instead of an
// error: customers can exist before their profile is filled in.
func newCustomerView(acct *LoginRecord, profile *CustomerProfile) *CustomerView {
	view := &CustomerView{
		ID:       acct.ID,
		Fullname: unknownFullname,
		Email:    acct.Email,
		Phone:    acct.Phone,
		Role:     acct.Role,
	}

	if profile != nil {
		view.Fullname = profile.Fullname
		view.Address = profile.Address
		view.DOB = profile.DOB
	}

	return view
}

type EmployeeView struct {
	ID         int64      `json:"id"`
	Fullname   string     `json:"fullname"`
	LoginEmail string     `json:"loginEmail"`
	Phone      *string    `json:"phone"`
	Address    *string    `json:"address"`
	DOB        *time.Time `json:"dob"`
	HireDate   *time.Time `json:"hire_date"`
	Avatar     *string    `json:"avatar"`
	Department *string    `json:"department"`
	Email      *string    `json:"email"`
	Role       Role       `json:"role"`
}

type ManagerView struct {
	ID         int64      `json:"id"`
	Fullname   string     `json:"fullname"`
	Email      string     `json:"email"`
	Phone      *string    `json:"phone"`
	Address    *string    `json:"address"`
	DOB        *time.Time `json:"dob"`
	Avatar     *string    `json:"avatar"`
	Department *string    `json:"department"`
	Role       Role       `json:"role"`
}

type SignUpResult struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// UpdateProfileParams carries the atomic two-table profile edit. DOB is
// optional: an empty string leaves the stored date untouched rather than
// nulling it out.
type UpdateProfileParams struct {
	ID      int64
	Email   string
	Phone   string
	Name    string
	Address string
	DOB     string
}

type UpdatedView struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	Fullname string  `json:"fullname"`
	Address  *string `json:"address"`
}

type UpdateProfileRequest struct {
	Email   string `json:"email"   validate:"required,email,max=255"`
	Phone   string `json:"phone"   validate:"max=20"`
	Name    string `json:"name"    validate:"required,min=1,max=100"`
	Address string `json:"address" validate:"max=255"`
	DOB     string `json:"dob"     validate:"omitempty,datetime=2006-01-02"`
}
