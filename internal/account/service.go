// AngelaMos | 2026
// service.go

package account

import (
	"context"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*Identity, error) {
	return s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Service) GetCustomer(
	ctx context.Context,
	id int64,
) (*CustomerView, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) RegisterCustomer(
	ctx context.Context,
	email, passwordHash, fullname string,
) (*SignUpResult, error) {
	return s.repo.CreateCustomer(
		ctx,
		strings.ToLower(strings.TrimSpace(email)),
		passwordHash,
		strings.TrimSpace(fullname),
	)
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	id int64,
	req UpdateProfileRequest,
) (*UpdatedView, error) {
	return s.repo.UpdateProfile(ctx, UpdateProfileParams{
		ID:      id,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   strings.TrimSpace(req.Phone),
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		DOB:     req.DOB,
	})
}

func (s *Service) GetEmployee(
	ctx context.Context,
	id int64,
) (*EmployeeView, error) {
	return s.repo.FindEmployeeByID(ctx, id)
}

func (s *Service) GetManager(
	ctx context.Context,
	id int64,
) (*ManagerView, error) {
	return s.repo.FindManagerByID(ctx, id)
}

func (s *Service) GetPassword(ctx context.Context, id int64) (string, error) {
	return s.repo.GetPassword(ctx, id)
}

func (s *Service) ChangePassword(
	ctx context.Context,
	id int64,
	newHash string,
) error {
	return s.repo.ChangePassword(ctx, id, newHash)
}
