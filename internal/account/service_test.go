// AngelaMos | 2026
// service_test.go

package account

import (
	"context"
	"testing"

	"github.com/carterperez-dev/bakery-backoffice/internal/core"
)

type fakeRepository struct {
	identities map[string]*Identity

	lastEmail    string
	lastFullname string
	lastParams   UpdateProfileParams
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{identities: make(map[string]*Identity)}
}

func (f *fakeRepository) FindByEmail(
	_ context.Context,
	email string,
) (*Identity, error) {
	f.lastEmail = email
	if identity, ok := f.identities[email]; ok {
		return identity, nil
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepository) FindByID(
	context.Context,
	int64,
) (*CustomerView, error) {
	return nil, core.ErrNotFound
}

func (f *fakeRepository) SignUp(
	_ context.Context,
	email, _ string,
) (*SignUpResult, error) {
	return &SignUpResult{ID: 1, Email: email}, nil
}

func (f *fakeRepository) AddCustomerProfile(
	_ context.Context,
	_ int64,
	fullname string,
) (string, error) {
	return fullname, nil
}

func (f *fakeRepository) CreateCustomer(
	_ context.Context,
	email, _, fullname string,
) (*SignUpResult, error) {
	f.lastEmail = email
	f.lastFullname = fullname
	return &SignUpResult{ID: 1, Email: email}, nil
}

func (f *fakeRepository) UpdateProfile(
	_ context.Context,
	params UpdateProfileParams,
) (*UpdatedView, error) {
	f.lastParams = params
	return &UpdatedView{
		ID:       params.ID,
		Email:    params.Email,
		Fullname: params.Name,
	}, nil
}

func (f *fakeRepository) FindEmployeeByID(
	context.Context,
	int64,
) (*EmployeeView, error) {
	return nil, core.ErrNotFound
}

func (f *fakeRepository) FindManagerByID(
	context.Context,
	int64,
) (*ManagerView, error) {
	return nil, core.ErrNotFound
}

func (f *fakeRepository) GetPassword(
	context.Context,
	int64,
) (string, error) {
	return "", core.ErrNotFound
}

func (f *fakeRepository) ChangePassword(
	context.Context,
	int64,
	string,
) error {
	return nil
}

func TestGetByEmailNormalizes(t *testing.T) {
	repo := newFakeRepository()
	repo.identities["jo@example.com"] = &Identity{
		ID:    1,
		Email: "jo@example.com",
		Role:  RoleCustomer,
	}

	svc := NewService(repo)

	identity, err := svc.GetByEmail(context.Background(), "  Jo@Example.COM ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.lastEmail != "jo@example.com" {
		t.Errorf("lookup email = %q, want normalized", repo.lastEmail)
	}
	if identity.ID != 1 {
		t.Errorf("wrong identity returned: %+v", identity)
	}
}

func TestRegisterCustomerNormalizes(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.RegisterCustomer(
		context.Background(),
		" New@Example.com ",
		"hash",
		"  Jo Baker ",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.lastEmail != "new@example.com" {
		t.Errorf("stored email = %q, want normalized", repo.lastEmail)
	}
	if repo.lastFullname != "Jo Baker" {
		t.Errorf("stored fullname = %q, want trimmed", repo.lastFullname)
	}
}

func TestUpdateProfilePassesThrough(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	view, err := svc.UpdateProfile(context.Background(), 42, UpdateProfileRequest{
		Email:   " Jo@Example.com ",
		Phone:   " 555-0101 ",
		Name:    "Jo Baker",
		Address: "12 Baker St",
		DOB:     "1990-04-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.lastParams.ID != 42 {
		t.Errorf("id = %d, want 42", repo.lastParams.ID)
	}
	if repo.lastParams.Email != "jo@example.com" {
		t.Errorf("email = %q, want normalized", repo.lastParams.Email)
	}
	if repo.lastParams.Phone != "555-0101" {
		t.Errorf("phone = %q, want trimmed", repo.lastParams.Phone)
	}
	if repo.lastParams.DOB != "1990-04-01" {
		t.Errorf("dob = %q, want passed through", repo.lastParams.DOB)
	}
	if view.Email != "jo@example.com" {
		t.Errorf("view email = %q", view.Email)
	}
}

func TestUpdateProfileOmittedDOB(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.UpdateProfile(context.Background(), 42, UpdateProfileRequest{
		Email: "jo@example.com",
		Name:  "Jo Baker",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.lastParams.DOB != "" {
		t.Errorf("dob = %q, want empty so the stored date survives", repo.lastParams.DOB)
	}
}

func TestUpdateProfileTrimsAddress(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.UpdateProfile(context.Background(), 42, UpdateProfileRequest{
		Email:   "jo@example.com",
		Name:    "Jo Baker",
		Address: "  12 Rye Lane  ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.lastParams.Address != "12 Rye Lane" {
		t.Errorf("address = %q, want trimmed", repo.lastParams.Address)
	}
}
