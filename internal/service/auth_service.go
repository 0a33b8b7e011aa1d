package service

import (
	"context"

	"go-gin-gorm-shop/internal/core/auth"
	"go-gin-gorm-shop/internal/domain"
)

type TokenIssuer interface {
	Issue(userID int64, email string) (string, error)
	Parse(token string) (*auth.Claims, error)
}

// Profile 对外的用户信息，不含密码哈希
type Profile struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	LastName string  `json:"last_name"`
	Phone    *string `json:"phone"`
	Email    string  `json:"email"`
}

func ProfileOf(u *domain.User) Profile {
	return Profile{ID: u.ID, Name: u.Name, LastName: u.LastName, Phone: u.Phone, Email: u.Email}
}

type Registration struct {
	User  Profile
	Token string
}

// Session 登录结果；User 为完整记录，对外输出前由调用方裁剪
type Session struct {
	User  *domain.User
	Token string
}

type AuthService struct {
	users  domain.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewAuthService(users domain.UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, in UserFields) (*Registration, error) {
	r, err := s.register(ctx, in)
	if err != nil {
		return nil, domain.Wrap("Error registering user: ", err)
	}
	return r, nil
}

func (s *AuthService) register(ctx context.Context, in UserFields) (*Registration, error) {
	if blank(in.Name) || blank(in.LastName) || blank(in.Email) || blank(in.Password) {
		return nil, domain.Validation("Missing required fields")
	}
	existing, err := s.users.FindByEmail(ctx, *in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("Email is already registered")
	}
	hash, err := s.hasher.Hash(*in.Password)
	if err != nil {
		return nil, err
	}
	u, err := s.users.Create(ctx, &domain.User{
		Name:     *in.Name,
		LastName: *in.LastName,
		Phone:    in.Phone,
		Email:    *in.Email,
		Password: hash,
	})
	if err != nil {
		return nil, err
	}
	if u == nil || u.ID == 0 {
		return nil, domain.StoreFailure("Unexpected response while creating user")
	}
	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &Registration{User: ProfileOf(u), Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	sess, err := s.login(ctx, email, password)
	if err != nil {
		return nil, domain.Wrap("Error logging in: ", err)
	}
	return sess, nil
}

func (s *AuthService) login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.Unauthorized("User not found")
	}
	if !s.hasher.Compare(u.Password, password) {
		return nil, domain.Unauthorized("Invalid password")
	}
	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Token: token}, nil
}

// Verify 缺失/格式错误/过期/签名不符统一为 Unauthorized
func (s *AuthService) Verify(token string) (*auth.Claims, error) {
	c, err := s.tokens.Parse(token)
	if err != nil {
		return nil, &domain.Error{Kind: domain.KindUnauthorized, Msg: "Invalid or expired token", Err: err}
	}
	return c, nil
}
