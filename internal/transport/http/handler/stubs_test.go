package handler

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"go-gin-gorm-shop/internal/core/auth"
	"go-gin-gorm-shop/internal/domain"
	"go-gin-gorm-shop/internal/service"
)

// crud 通用桩：固定返回 items/one/err，并记录入参
type crud[T, F any] struct {
	items []T
	one   *T
	err   error

	gotID int64
	gotIn F
	calls []string
}

func (s *crud[T, F]) List(context.Context) ([]T, error) {
	s.calls = append(s.calls, "List")
	return s.items, s.err
}

func (s *crud[T, F]) Get(_ context.Context, id int64) (*T, error) {
	s.calls = append(s.calls, "Get")
	s.gotID = id
	return s.one, s.err
}

func (s *crud[T, F]) Create(_ context.Context, in F) (*T, error) {
	s.calls = append(s.calls, "Create")
	s.gotIn = in
	return s.one, s.err
}

func (s *crud[T, F]) Update(_ context.Context, id int64, in F) (*T, error) {
	s.calls = append(s.calls, "Update")
	s.gotID, s.gotIn = id, in
	return s.one, s.err
}

func (s *crud[T, F]) SoftDelete(_ context.Context, id int64) (*T, error) {
	s.calls = append(s.calls, "SoftDelete")
	s.gotID = id
	return s.one, s.err
}

func (s *crud[T, F]) HardDelete(_ context.Context, id int64) (*T, error) {
	s.calls = append(s.calls, "HardDelete")
	s.gotID = id
	return s.one, s.err
}

type products struct {
	crud[domain.Product, service.ProductFields]
	genre string
}

func (p *products) ListByGenre(_ context.Context, genreID string) ([]domain.Product, error) {
	p.genre = genreID
	return p.items, p.err
}

type users struct {
	crud[domain.User, service.UserFields]
	email string
}

func (u *users) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u.email = email
	return u.one, u.err
}

type orders struct {
	crud[domain.Order, service.OrderFields]
	args []string
}

func (o *orders) ListByCustomer(_ context.Context, id string) ([]domain.Order, error) {
	o.args = append(o.args, "customer:"+id)
	return o.items, o.err
}

func (o *orders) ListByStatus(_ context.Context, status string) ([]domain.Order, error) {
	o.args = append(o.args, "status:"+status)
	return o.items, o.err
}

func (o *orders) ListByDateRange(_ context.Context, start, end string) ([]domain.Order, error) {
	o.args = append(o.args, "range:"+start+".."+end)
	return o.items, o.err
}

func (o *orders) Stats(context.Context) ([]domain.StatusTotal, error) {
	o.args = append(o.args, "stats")
	return nil, o.err
}

func (o *orders) CustomerTotals(_ context.Context, id string) (domain.CustomerTotals, error) {
	o.args = append(o.args, "totals:"+id)
	return domain.CustomerTotals{CustomerID: 3, OrderCount: 2, TotalAmount: decimal.RequireFromString("40")}, o.err
}

func (o *orders) MonthlyStats(_ context.Context, year string) ([]domain.MonthlyStat, error) {
	o.args = append(o.args, "monthly:"+year)
	return nil, o.err
}

type payments struct {
	crud[domain.Payment, service.PaymentFields]
	args []string
}

func (p *payments) ListByOrder(_ context.Context, id string) ([]domain.Payment, error) {
	p.args = append(p.args, "order:"+id)
	return p.items, p.err
}

func (p *payments) ListByStatus(_ context.Context, status string) ([]domain.Payment, error) {
	p.args = append(p.args, "status:"+status)
	return p.items, p.err
}

func (p *payments) ListByDateRange(_ context.Context, start, end string) ([]domain.Payment, error) {
	p.args = append(p.args, "range:"+start+".."+end)
	return p.items, p.err
}

func (p *payments) Summary(context.Context) ([]domain.PaymentStatusTotal, error) {
	p.args = append(p.args, "summary")
	return nil, p.err
}

func (p *payments) TotalByStatus(_ context.Context, status string) (decimal.Decimal, error) {
	p.args = append(p.args, "total:"+status)
	return decimal.RequireFromString("12.5"), p.err
}

// tokenStub "good" → 普通用户，"admin" → 管理员
type tokenStub struct{}

func (tokenStub) Parse(tok string) (*auth.Claims, error) {
	switch tok {
	case "good":
		return &auth.Claims{UserID: 7, Email: "ana@example.com"}, nil
	case "admin":
		return &auth.Claims{UserID: 1, Email: "boss@example.com"}, nil
	}
	return nil, auth.ErrInvalidToken
}

type authStub struct {
	reg   *service.Registration
	email string
	pass  string
}

func (a *authStub) Register(_ context.Context, in service.UserFields) (*service.Registration, error) {
	if in.Email == nil {
		return nil, domain.Wrap("Error registering user: ", domain.Validation("Missing required fields"))
	}
	return a.reg, nil
}

func (a *authStub) Login(_ context.Context, email, password string) (*service.Session, error) {
	a.email, a.pass = email, password
	if password != "pw" {
		return nil, domain.Wrap("Error logging in: ", domain.Unauthorized("Invalid password"))
	}
	hash := "hashed:pw"
	return &service.Session{
		User:  &domain.User{ID: 7, Name: "Ana", LastName: "Diaz", Email: email, Password: hash},
		Token: "good",
	}, nil
}

func (a *authStub) Verify(tok string) (*auth.Claims, error) {
	c, err := tokenStub{}.Parse(tok)
	if err != nil {
		return nil, &domain.Error{Kind: domain.KindUnauthorized, Msg: "Invalid or expired token", Err: err}
	}
	return c, nil
}

var errConn = errors.New("connection refused")
