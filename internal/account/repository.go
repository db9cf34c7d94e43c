// AngelaMos | 2026
// repository.go

package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/bakery-backoffice/internal/core"
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Identity, error)
	FindByID(ctx context.Context, id int64) (*CustomerView, error)
	SignUp(ctx context.Context, email, passwordHash string) (*SignUpResult, error)
	AddCustomerProfile(
		ctx context.Context,
		userID int64,
		fullname string,
	) (string, error)
	CreateCustomer(
		ctx context.Context,
		email, passwordHash, fullname string,
	) (*SignUpResult, error)
	UpdateProfile(
		ctx context.Context,
		params UpdateProfileParams,
	) (*UpdatedView, error)
	FindEmployeeByID(ctx context.Context, id int64) (*EmployeeView, error)
	FindManagerByID(ctx context.Context, id int64) (*ManagerView, error)
	GetPassword(ctx context.Context, id int64) (string, error)
	ChangePassword(ctx context.Context, id int64, newHash string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// FindByEmail resolves the login row, then dispatches on its role to the
// matching profile table. A role with no known profile kind, or a login row
// whose profile is missing, resolves to ErrNotFound: referential corruption
// degrades to "no such account" instead of crashing the caller.
func (r *repository) FindByEmail(
	ctx context.Context,
	email string,
) (*Identity, error) {
	query := `
		SELECT id, email, password, phone, role_id, createdat, updatedat
		FROM useraccount
		WHERE email = $1
		LIMIT 1`

	var acct LoginRecord
	err := r.db.GetContext(ctx, &acct, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find account by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find account by email: %w", err)
	}

	table, ok := acct.Role.ProfileTable()
	if !ok {
		return nil, fmt.Errorf(
			"find account by email: role %d has no profile kind: %w",
			acct.Role,
			core.ErrNotFound,
		)
	}

	// Table name comes from the fixed role switch, never from input.
	profileQuery := fmt.Sprintf(
		`SELECT fullname FROM %s WHERE user_id = $1`,
		table,
	)

	var fullname string
	err = r.db.GetContext(ctx, &fullname, profileQuery, acct.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf(
			"find account by email: profile row missing: %w",
			core.ErrNotFound,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("find account by email: %w", err)
	}

	return &Identity{
		ID:       acct.ID,
		Fullname: fullname,
		Email:    acct.Email,
		Password: acct.Password,
		Role:     acct.Role,
	}, nil
}

// FindByID is the graceful read-side counterpart of FindByEmail: a login row
// without a customer profile still resolves, with the "Unknown" fullname
// sentinel filled in.
func (r *repository) FindByID(
	ctx context.Context,
	id int64,
) (*CustomerView, error) {
	query := `
		SELECT id, email, phone, role_id
		FROM useraccount
		WHERE id = $1`

	var acct LoginRecord
	err := r.db.GetContext(ctx, &acct, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find account: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}

	profileQuery := `
		SELECT user_id, fullname, address, dob
		FROM customer
		WHERE user_id = $1`

	var profile CustomerProfile
	err = r.db.GetContext(ctx, &profile, profileQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return newCustomerView(&acct, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("find customer profile: %w", err)
	}

	return newCustomerView(&acct, &profile), nil
}

func (r *repository) SignUp(
	ctx context.Context,
	email, passwordHash string,
) (*SignUpResult, error) {
	return r.signUp(ctx, r.db, email, passwordHash)
}

func (r *repository) signUp(
	ctx context.Context,
	q core.DBTX,
	email, passwordHash string,
) (*SignUpResult, error) {
	query := `
		INSERT INTO useraccount (email, password, createdat, role_id)
		VALUES ($1, $2, CURRENT_TIMESTAMP, $3)
		RETURNING id, email`

	var result SignUpResult
	err := q.GetContext(ctx, &result, query, email, passwordHash, RoleCustomer)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return nil, fmt.Errorf("sign up: %w", core.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("sign up: %w", err)
	}

	return &result, nil
}

func (r *repository) AddCustomerProfile(
	ctx context.Context,
	userID int64,
	fullname string,
) (string, error) {
	return r.addCustomerProfile(ctx, r.db, userID, fullname)
}

func (r *repository) addCustomerProfile(
	ctx context.Context,
	q core.DBTX,
	userID int64,
	fullname string,
) (string, error) {
	query := `
		INSERT INTO customer (user_id, fullname)
		VALUES ($1, $2)
		RETURNING fullname`

	var inserted string
	if err := q.GetContext(ctx, &inserted, query, userID, fullname); err != nil {
		return "", fmt.Errorf("add customer profile: %w", err)
	}

	return inserted, nil
}

// CreateCustomer runs the sign-up flow's two inserts on one transactional
// client, so the login row never exists without its customer profile.
func (r *repository) CreateCustomer(
	ctx context.Context,
	email, passwordHash, fullname string,
) (*SignUpResult, error) {
	var result *SignUpResult

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		created, err := r.signUp(ctx, tx, email, passwordHash)
		if err != nil {
			return err
		}

		if _, err := r.addCustomerProfile(ctx, tx, created.ID, fullname); err != nil {
			return err
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateProfile applies the login-row update, the customer-row update, and
// the conditional dob update atomically. Either all three are visible
// afterward or none are.
func (r *repository) UpdateProfile(
	ctx context.Context,
	params UpdateProfileParams,
) (*UpdatedView, error) {
	var view UpdatedView

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		accountQuery := `
			UPDATE useraccount
			SET email = $1, phone = $2, updatedat = NOW()
			WHERE id = $3
			RETURNING id, email, phone`

		var acct struct {
			ID    int64   `db:"id"`
			Email string  `db:"email"`
			Phone *string `db:"phone"`
		}
		err := tx.GetContext(
			ctx,
			&acct,
			accountQuery,
			params.Email,
			params.Phone,
			params.ID,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update account: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("update account: %w", err)
		}

		profileQuery := `
			UPDATE customer
			SET fullname = $1, address = $2
			WHERE user_id = $3
			RETURNING fullname, address`

		var profile struct {
			Fullname string  `db:"fullname"`
			Address  *string `db:"address"`
		}
		err = tx.GetContext(
			ctx,
			&profile,
			profileQuery,
			params.Name,
			params.Address,
			params.ID,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update customer profile: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("update customer profile: %w", err)
		}

		// Omitted dob must not null out the stored date.
		if params.DOB != "" {
			dobQuery := `UPDATE customer SET dob = $1 WHERE user_id = $2`
			if _, err := tx.ExecContext(ctx, dobQuery, params.DOB, params.ID); err != nil {
				return fmt.Errorf("update dob: %w", err)
			}
		}

		view = UpdatedView{
			ID:       acct.ID,
			Email:    acct.Email,
			Phone:    acct.Phone,
			Fullname: profile.Fullname,
			Address:  profile.Address,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &view, nil
}

// FindEmployeeByID is strict: employees are provisioned administratively, so
// a login row without its employee profile is ErrNotFound, never a partial
// view.
func (r *repository) FindEmployeeByID(
	ctx context.Context,
	id int64,
) (*EmployeeView, error) {
	query := `
		SELECT u.id, e.fullname, u.email AS login_email, u.phone, e.address,
		       e.dob, e.hire_date, e.avatar, e.department, e.email,
		       u.role_id AS role
		FROM useraccount u
		INNER JOIN employee e ON u.id = e.user_id
		WHERE u.id = $1`

	var row struct {
		ID         int64      `db:"id"`
		Fullname   string     `db:"fullname"`
		LoginEmail string     `db:"login_email"`
		Phone      *string    `db:"phone"`
		Address    *string    `db:"address"`
		DOB        *time.Time `db:"dob"`
		HireDate   *time.Time `db:"hire_date"`
		Avatar     *string    `db:"avatar"`
		Department *string    `db:"department"`
		Email      *string    `db:"email"`
		Role       Role       `db:"role"`
	}
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find employee: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find employee: %w", err)
	}

	return &EmployeeView{
		ID:         row.ID,
		Fullname:   row.Fullname,
		LoginEmail: row.LoginEmail,
		Phone:      row.Phone,
		Address:    row.Address,
		DOB:        row.DOB,
		HireDate:   row.HireDate,
		Avatar:     row.Avatar,
		Department: row.Department,
		Email:      row.Email,
		Role:       row.Role,
	}, nil
}

func (r *repository) FindManagerByID(
	ctx context.Context,
	id int64,
) (*ManagerView, error) {
	query := `
		SELECT u.id, m.fullname, u.email, u.phone, m.address, m.dob,
		       m.avatar, m.department, u.role_id AS role
		FROM useraccount u
		INNER JOIN manager m ON u.id = m.user_id
		WHERE u.id = $1`

	var row struct {
		ID         int64      `db:"id"`
		Fullname   string     `db:"fullname"`
		Email      string     `db:"email"`
		Phone      *string    `db:"phone"`
		Address    *string    `db:"address"`
		DOB        *time.Time `db:"dob"`
		Avatar     *string    `db:"avatar"`
		Department *string    `db:"department"`
		Role       Role       `db:"role"`
	}
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find manager: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find manager: %w", err)
	}

	return &ManagerView{
		ID:         row.ID,
		Fullname:   row.Fullname,
		Email:      row.Email,
		Phone:      row.Phone,
		Address:    row.Address,
		DOB:        row.DOB,
		Avatar:     row.Avatar,
		Department: row.Department,
		Role:       row.Role,
	}, nil
}

func (r *repository) GetPassword(
	ctx context.Context,
	id int64,
) (string, error) {
	query := `SELECT password FROM useraccount WHERE id = $1`

	var hash string
	err := r.db.GetContext(ctx, &hash, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("get password: %w", core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get password: %w", err)
	}

	return hash, nil
}

// ChangePassword is unconditional; re-verification of the current password
// belongs to the calling authentication flow.
func (r *repository) ChangePassword(
	ctx context.Context,
	id int64,
	newHash string,
) error {
	query := `
		UPDATE useraccount
		SET password = $1, updatedat = NOW()
		WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, newHash, id)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("change password: %w", core.ErrNotFound)
	}

	return nil
}
