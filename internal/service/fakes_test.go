package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"go-gin-gorm-shop/internal/core/auth"
	"go-gin-gorm-shop/internal/domain"
)

var errDB = errors.New("DB error")

var fixedNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

// table 内存版持久层：软删行对普通查询不可见，记录每次调用
type table[T any] struct {
	rows    map[int64]*T
	deleted map[int64]bool
	next    int64
	calls   []string
	updates []map[string]any
	fail    map[string]error
	// noAffect 模拟并发删除后 update/delete 影响 0 行
	noAffect bool

	setID func(*T, int64)
	apply func(*T, map[string]any)
}

func newTable[T any](setID func(*T, int64), apply func(*T, map[string]any)) *table[T] {
	return &table[T]{
		rows:    map[int64]*T{},
		deleted: map[int64]bool{},
		fail:    map[string]error{},
		setID:   setID,
		apply:   apply,
	}
}

func (t *table[T]) call(name string) error {
	t.calls = append(t.calls, name)
	return t.fail[name]
}

func (t *table[T]) seed(rows ...T) {
	for i := range rows {
		t.next++
		r := rows[i]
		t.setID(&r, t.next)
		t.rows[t.next] = &r
	}
}

func (t *table[T]) live(keep func(*T) bool) []T {
	var out []T
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if t.deleted[id] {
			continue
		}
		if keep == nil || keep(t.rows[id]) {
			out = append(out, *t.rows[id])
		}
	}
	return out
}

func (t *table[T]) findAll() ([]T, error) {
	if err := t.call("FindAll"); err != nil {
		return nil, err
	}
	return t.live(nil), nil
}

func (t *table[T]) findOne(name string, keep func(*T) bool) (*T, error) {
	if err := t.call(name); err != nil {
		return nil, err
	}
	rows := t.live(keep)
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (t *table[T]) findByID(id int64) (*T, error) {
	if err := t.call("FindByID"); err != nil {
		return nil, err
	}
	r, ok := t.rows[id]
	if !ok || t.deleted[id] {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (t *table[T]) filter(name string, keep func(*T) bool) ([]T, error) {
	if err := t.call(name); err != nil {
		return nil, err
	}
	return t.live(keep), nil
}

func (t *table[T]) create(v *T) (*T, error) {
	if err := t.call("Create"); err != nil {
		return nil, err
	}
	t.next++
	cp := *v
	t.setID(&cp, t.next)
	t.rows[t.next] = &cp
	out := cp
	return &out, nil
}

func (t *table[T]) update(id int64, fields map[string]any) (bool, error) {
	if err := t.call("Update"); err != nil {
		return false, err
	}
	t.updates = append(t.updates, fields)
	r, ok := t.rows[id]
	if t.noAffect || !ok || t.deleted[id] {
		return false, nil
	}
	t.apply(r, fields)
	return true, nil
}

func (t *table[T]) softDelete(id int64) (bool, error) {
	if err := t.call("SoftDelete"); err != nil {
		return false, err
	}
	if _, ok := t.rows[id]; t.noAffect || !ok || t.deleted[id] {
		return false, nil
	}
	t.deleted[id] = true
	return true, nil
}

func (t *table[T]) hardDelete(id int64) (bool, error) {
	if err := t.call("HardDelete"); err != nil {
		return false, err
	}
	if _, ok := t.rows[id]; t.noAffect || !ok {
		return false, nil
	}
	delete(t.rows, id)
	delete(t.deleted, id)
	return true, nil
}

func str(v any) string { return v.(string) }

/* ---------------- products ---------------- */

type fakeProducts struct{ *table[domain.Product] }

func newFakeProducts() *fakeProducts {
	return &fakeProducts{newTable(
		func(p *domain.Product, id int64) { p.ID = id },
		func(p *domain.Product, f map[string]any) {
			for k, v := range f {
				switch k {
				case "name":
					p.Name = str(v)
				case "artist":
					p.Artist = str(v)
				case "genre_id":
					p.GenreID = v.(int64)
				case "price":
					p.Price = v.(decimal.Decimal)
				case "publication_date":
					p.PublicationDate = v.(domain.Date)
				case "description":
					d := str(v)
					p.Description = &d
				}
			}
		},
	)}
}

func (f *fakeProducts) FindAll(context.Context) ([]domain.Product, error) { return f.findAll() }
func (f *fakeProducts) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	return f.findByID(id)
}
func (f *fakeProducts) FindByName(_ context.Context, name string) (*domain.Product, error) {
	return f.findOne("FindByName", func(p *domain.Product) bool { return p.Name == name })
}
func (f *fakeProducts) FindByGenre(_ context.Context, g int64) ([]domain.Product, error) {
	return f.filter("FindByGenre", func(p *domain.Product) bool { return p.GenreID == g })
}
func (f *fakeProducts) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	return f.create(p)
}
func (f *fakeProducts) Update(_ context.Context, id int64, m map[string]any) (bool, error) {
	return f.update(id, m)
}
func (f *fakeProducts) SoftDelete(_ context.Context, id int64) (bool, error) { return f.softDelete(id) }
func (f *fakeProducts) HardDelete(_ context.Context, id int64) (bool, error) { return f.hardDelete(id) }

/* ---------------- users ---------------- */

type fakeUsers struct{ *table[domain.User] }

func newFakeUsers() *fakeUsers {
	return &fakeUsers{newTable(
		func(u *domain.User, id int64) { u.ID = id },
		func(u *domain.User, f map[string]any) {
			for k, v := range f {
				switch k {
				case "name":
					u.Name = str(v)
				case "last_name":
					u.LastName = str(v)
				case "phone":
					p := str(v)
					u.Phone = &p
				case "email":
					u.Email = str(v)
				case "password":
					u.Password = str(v)
				}
			}
		},
	)}
}

func (f *fakeUsers) FindAll(context.Context) ([]domain.User, error) { return f.findAll() }
func (f *fakeUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	return f.findByID(id)
}
func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return f.findOne("FindByEmail", func(u *domain.User) bool { return u.Email == email })
}
func (f *fakeUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return f.create(u)
}
func (f *fakeUsers) Update(_ context.Context, id int64, m map[string]any) (bool, error) {
	return f.update(id, m)
}
func (f *fakeUsers) SoftDelete(_ context.Context, id int64) (bool, error) { return f.softDelete(id) }
func (f *fakeUsers) HardDelete(_ context.Context, id int64) (bool, error) { return f.hardDelete(id) }

/* ---------------- orders ---------------- */

type fakeOrders struct {
	*table[domain.Order]
	byStatus   []domain.StatusTotal
	byCustomer map[int64]domain.CustomerTotals
	monthly    map[int][]domain.MonthlyStat
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{
		table: newTable(
			func(o *domain.Order, id int64) { o.ID = id },
			func(o *domain.Order, f map[string]any) {
				for k, v := range f {
					switch k {
					case "customer_id":
						o.CustomerID = v.(int64)
					case "total":
						o.Total = v.(decimal.Decimal)
					case "order_date":
						o.OrderDate = v.(domain.Date)
					case "status":
						o.Status = str(v)
					case "notes":
						n := str(v)
						o.Notes = &n
					}
				}
			},
		),
		byCustomer: map[int64]domain.CustomerTotals{},
		monthly:    map[int][]domain.MonthlyStat{},
	}
}

func (f *fakeOrders) FindAll(context.Context) ([]domain.Order, error) { return f.findAll() }
func (f *fakeOrders) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	return f.findByID(id)
}
func (f *fakeOrders) FindByCustomer(_ context.Context, c int64) ([]domain.Order, error) {
	return f.filter("FindByCustomer", func(o *domain.Order) bool { return o.CustomerID == c })
}
func (f *fakeOrders) FindByStatus(_ context.Context, s string) ([]domain.Order, error) {
	return f.filter("FindByStatus", func(o *domain.Order) bool { return o.Status == s })
}
func (f *fakeOrders) FindByDateRange(_ context.Context, start, end domain.Date) ([]domain.Order, error) {
	return f.filter("FindByDateRange", func(o *domain.Order) bool {
		return !o.OrderDate.Before(start.Time) && !o.OrderDate.After(end.Time)
	})
}
func (f *fakeOrders) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	return f.create(o)
}
func (f *fakeOrders) Update(_ context.Context, id int64, m map[string]any) (bool, error) {
	return f.update(id, m)
}
func (f *fakeOrders) SoftDelete(_ context.Context, id int64) (bool, error) { return f.softDelete(id) }

func (f *fakeOrders) TotalsByStatus(context.Context) ([]domain.StatusTotal, error) {
	if err := f.call("TotalsByStatus"); err != nil {
		return nil, err
	}
	return f.byStatus, nil
}

func (f *fakeOrders) TotalsByCustomer(_ context.Context, c int64) (domain.CustomerTotals, error) {
	if err := f.call("TotalsByCustomer"); err != nil {
		return domain.CustomerTotals{}, err
	}
	if t, ok := f.byCustomer[c]; ok {
		return t, nil
	}
	return domain.CustomerTotals{CustomerID: c, TotalAmount: decimal.Zero}, nil
}

func (f *fakeOrders) MonthlyStats(_ context.Context, y int) ([]domain.MonthlyStat, error) {
	if err := f.call("MonthlyStats"); err != nil {
		return nil, err
	}
	return f.monthly[y], nil
}

/* ---------------- payments ---------------- */

type fakePayments struct {
	*table[domain.Payment]
	summary []domain.PaymentStatusTotal
}

func newFakePayments() *fakePayments {
	return &fakePayments{table: newTable(
		func(p *domain.Payment, id int64) { p.ID = id },
		func(p *domain.Payment, f map[string]any) {
			for k, v := range f {
				switch k {
				case "order_id":
					p.OrderID = v.(int64)
				case "method":
					p.Method = str(v)
				case "amount":
					p.Amount = v.(decimal.Decimal)
				case "payment_date":
					p.PaymentDate = v.(domain.Date)
				case "status":
					p.Status = str(v)
				}
			}
		},
	)}
}

func (f *fakePayments) FindAll(context.Context) ([]domain.Payment, error) { return f.findAll() }
func (f *fakePayments) FindByID(_ context.Context, id int64) (*domain.Payment, error) {
	return f.findByID(id)
}
func (f *fakePayments) FindByOrder(_ context.Context, o int64) ([]domain.Payment, error) {
	return f.filter("FindByOrder", func(p *domain.Payment) bool { return p.OrderID == o })
}
func (f *fakePayments) FindByStatus(_ context.Context, s string) ([]domain.Payment, error) {
	return f.filter("FindByStatus", func(p *domain.Payment) bool { return p.Status == s })
}
func (f *fakePayments) FindByDateRange(_ context.Context, start, end domain.Date) ([]domain.Payment, error) {
	return f.filter("FindByDateRange", func(p *domain.Payment) bool {
		return !p.PaymentDate.Before(start.Time) && !p.PaymentDate.After(end.Time)
	})
}
func (f *fakePayments) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	return f.create(p)
}
func (f *fakePayments) Update(_ context.Context, id int64, m map[string]any) (bool, error) {
	return f.update(id, m)
}
func (f *fakePayments) SoftDelete(_ context.Context, id int64) (bool, error) { return f.softDelete(id) }

func (f *fakePayments) Summary(context.Context) ([]domain.PaymentStatusTotal, error) {
	if err := f.call("Summary"); err != nil {
		return nil, err
	}
	return f.summary, nil
}

func (f *fakePayments) TotalByStatus(_ context.Context, status string) (decimal.Decimal, error) {
	if err := f.call("TotalByStatus"); err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, p := range f.live(func(p *domain.Payment) bool { return p.Status == status }) {
		sum = sum.Add(p.Amount)
	}
	return sum, nil
}

/* ---------------- hashing / tokens ---------------- */

// plainHasher 测试用：前缀标记代替 bcrypt
type plainHasher struct{ err error }

func (h plainHasher) Hash(pw string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + pw, nil
}

func (plainHasher) Compare(hash, pw string) bool { return hash == "hashed:"+pw }

type fakeTokens struct {
	issued []auth.Claims
}

func (f *fakeTokens) Issue(id int64, email string) (string, error) {
	f.issued = append(f.issued, auth.Claims{UserID: id, Email: email})
	return "token-" + email, nil
}

func (f *fakeTokens) Parse(token string) (*auth.Claims, error) {
	email, ok := strings.CutPrefix(token, "token-")
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	for _, c := range f.issued {
		if c.Email == email {
			c := c
			return &c, nil
		}
	}
	return nil, auth.ErrInvalidToken
}

/* ---------------- cache ---------------- */

type countingCache struct {
	data        map[string][]byte
	loads       int
	invalidated []string
}

func newCountingCache() *countingCache { return &countingCache{data: map[string][]byte{}} }

func (c *countingCache) GetOrLoad(ctx context.Context, key string, _ time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if b, ok := c.data[key]; ok {
		return b, nil
	}
	c.loads++
	b, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.data[key] = b
	return b, nil
}

func (c *countingCache) Invalidate(_ context.Context, pattern string) error {
	c.invalidated = append(c.invalidated, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}
