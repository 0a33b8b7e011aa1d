package service

import (
	"context"

	"go-gin-gorm-shop/internal/domain"
)

// PasswordHasher 慢速加盐单向哈希（bcrypt）
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type UserService struct {
	repo   domain.UserRepository
	hasher PasswordHasher
}

func NewUserService(repo domain.UserRepository, hasher PasswordHasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	us, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, domain.Wrap("Error fetching users: ", err)
	}
	return us, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.get(ctx, id)
	if err != nil {
		return nil, domain.Wrap("Error fetching user: ", err)
	}
	return u, nil
}

func (s *UserService) get(ctx context.Context, id int64) (*domain.User, error) {
	if err := requireID(id, "User ID is required"); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.Wrap("Error fetching user by email: ", err)
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, in UserFields) (*domain.User, error) {
	u, err := s.create(ctx, in)
	if err != nil {
		return nil, domain.Wrap("Error creating user: ", err)
	}
	return u, nil
}

func (s *UserService) create(ctx context.Context, in UserFields) (*domain.User, error) {
	if blank(in.Name) || blank(in.LastName) || blank(in.Email) || blank(in.Password) {
		return nil, domain.Validation("Name, last name, email, and password are required fields")
	}
	if !emailRe.MatchString(*in.Email) {
		return nil, domain.Validation("Invalid email format")
	}
	dup, err := s.repo.FindByEmail(ctx, *in.Email)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, domain.Conflict("Email already exists")
	}
	if len(*in.Password) < minPasswordLen {
		return nil, domain.Validation("Password must be at least 6 characters long")
	}
	hash, err := s.hasher.Hash(*in.Password)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &domain.User{
		Name:     *in.Name,
		LastName: *in.LastName,
		Phone:    in.Phone,
		Email:    *in.Email,
		Password: hash,
	})
}

func (s *UserService) Update(ctx context.Context, id int64, in UserFields) (*domain.User, error) {
	u, err := s.update(ctx, id, in)
	if err != nil {
		return nil, domain.Wrap("Error updating user: ", err)
	}
	return u, nil
}

func (s *UserService) update(ctx context.Context, id int64, in UserFields) (*domain.User, error) {
	if err := requireID(id, "User ID is required for update"); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	for _, f := range []struct {
		v     *string
		label string
	}{{in.Name, "Name"}, {in.LastName, "Last name"}, {in.Email, "Email"}, {in.Password, "Password"}} {
		if err := notEmpty(f.v, f.label); err != nil {
			return nil, err
		}
	}
	if in.Email != nil && *in.Email != existing.Email {
		if !emailRe.MatchString(*in.Email) {
			return nil, domain.Validation("Invalid email format")
		}
		dup, err := s.repo.FindByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, domain.Conflict("Email already exists")
		}
	}
	if in.Password != nil && len(*in.Password) < minPasswordLen {
		return nil, domain.Validation("Password must be at least 6 characters long")
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.LastName != nil {
		fields["last_name"] = *in.LastName
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.Email != nil {
		fields["email"] = *in.Email
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		fields["password"] = hash
	}
	if len(fields) == 0 {
		return existing, nil
	}

	ok, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.StoreFailure("Failed to update user")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) SoftDelete(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.remove(ctx, id, false)
	if err != nil {
		return nil, domain.Wrap("Error deleting user: ", err)
	}
	return u, nil
}

func (s *UserService) HardDelete(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.remove(ctx, id, true)
	if err != nil {
		return nil, domain.Wrap("Error permanently deleting user: ", err)
	}
	return u, nil
}

func (s *UserService) remove(ctx context.Context, id int64, hard bool) (*domain.User, error) {
	msg, fail, del := "User ID is required for delete", "Failed to delete user", s.repo.SoftDelete
	if hard {
		msg, fail, del = "User ID is required for hard delete", "Failed to permanently delete user", s.repo.HardDelete
	}
	if err := requireID(id, msg); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	ok, err := del(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.StoreFailure(fail)
	}
	return existing, nil
}
