package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"go-gin-gorm-shop/internal/core/cache"
	"go-gin-gorm-shop/internal/domain"
)

const paymentReportKeys = "payments:*"

type PaymentService struct {
	repo     domain.PaymentRepository
	reports  cache.Store
	cacheTTL time.Duration
	now      func() time.Time
}

func NewPaymentService(repo domain.PaymentRepository, reports cache.Store, ttl time.Duration) *PaymentService {
	if reports == nil {
		reports = cache.Nop{}
	}
	return &PaymentService{repo: repo, reports: reports, cacheTTL: ttl, now: time.Now}
}

func (s *PaymentService) List(ctx context.Context) ([]domain.Payment, error) {
	ps, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, domain.Wrap("Error fetching payments: ", err)
	}
	return ps, nil
}

func (s *PaymentService) Get(ctx context.Context, id int64) (*domain.Payment, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return nil, domain.Wrap("Error fetching payment: ", err)
	}
	return p, nil
}

func (s *PaymentService) get(ctx context.Context, id int64) (*domain.Payment, error) {
	if err := requireID(id, "Payment ID is required"); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *PaymentService) ListByOrder(ctx context.Context, orderID string) ([]domain.Payment, error) {
	ps, err := s.listByOrder(ctx, orderID)
	if err != nil {
		return nil, domain.Wrap("Error fetching payments by order: ", err)
	}
	return ps, nil
}

func (s *PaymentService) listByOrder(ctx context.Context, orderID string) ([]domain.Payment, error) {
	if orderID == "" {
		return nil, domain.Validation("Order ID is required")
	}
	oid, err := wholeNumberString(orderID, "Order ID")
	if err != nil {
		return nil, err
	}
	return s.repo.FindByOrder(ctx, oid)
}

func (s *PaymentService) ListByStatus(ctx context.Context, status string) ([]domain.Payment, error) {
	ps, err := s.listByStatus(ctx, status)
	if err != nil {
		return nil, domain.Wrap("Error fetching payments by status: ", err)
	}
	return ps, nil
}

func (s *PaymentService) listByStatus(ctx context.Context, status string) ([]domain.Payment, error) {
	if err := paymentStatus(status); err != nil {
		return nil, err
	}
	return s.repo.FindByStatus(ctx, status)
}

func paymentStatus(status string) error {
	if status == "" {
		return domain.Validation("Status is required")
	}
	if !domain.ValidPaymentStatus(status) {
		return domain.Validation("Invalid payment status")
	}
	return nil
}

func (s *PaymentService) ListByDateRange(ctx context.Context, start, end string) ([]domain.Payment, error) {
	ps, err := s.listByDateRange(ctx, start, end)
	if err != nil {
		return nil, domain.Wrap("Error fetching payments by date range: ", err)
	}
	return ps, nil
}

func (s *PaymentService) listByDateRange(ctx context.Context, start, end string) ([]domain.Payment, error) {
	from, to, err := dateRange(start, end)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByDateRange(ctx, from, to)
}

func (s *PaymentService) Create(ctx context.Context, in PaymentFields) (*domain.Payment, error) {
	p, err := s.create(ctx, in)
	if err != nil {
		return nil, domain.Wrap("Error creating payment: ", err)
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *PaymentService) create(ctx context.Context, in PaymentFields) (*domain.Payment, error) {
	if blankNum(in.OrderID) || blank(in.Method) || blankNum(in.Amount) {
		return nil, domain.Validation("Order ID, method, and amount are required fields")
	}
	oid, err := wholeNumber(*in.OrderID, "Order ID")
	if err != nil {
		return nil, err
	}
	amount, err := positive(*in.Amount, "Amount")
	if err != nil {
		return nil, err
	}
	if !domain.ValidPaymentMethod(*in.Method) {
		return nil, domain.Validation("Invalid payment method")
	}
	status := domain.PaymentPending
	if !blank(in.Status) {
		if !domain.ValidPaymentStatus(*in.Status) {
			return nil, domain.Validation("Invalid payment status")
		}
		status = *in.Status
	}
	paid, err := dateOrToday(in.PaymentDate, "payment date", s.now())
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &domain.Payment{
		OrderID:     oid,
		Method:      *in.Method,
		Amount:      amount,
		PaymentDate: paid,
		Status:      status,
	})
}

func (s *PaymentService) Update(ctx context.Context, id int64, in PaymentFields) (*domain.Payment, error) {
	p, err := s.update(ctx, id, in)
	if err != nil {
		return nil, domain.Wrap("Error updating payment: ", err)
	}
	if p != nil {
		s.invalidate(ctx)
	}
	return p, nil
}

func (s *PaymentService) update(ctx context.Context, id int64, in PaymentFields) (*domain.Payment, error) {
	if err := requireID(id, "Payment ID is required for update"); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Amount != nil {
		amount, err := positive(*in.Amount, "Amount")
		if err != nil {
			return nil, err
		}
		fields["amount"] = amount
	}
	if in.OrderID != nil {
		oid, err := wholeNumber(*in.OrderID, "Order ID")
		if err != nil {
			return nil, err
		}
		fields["order_id"] = oid
	}
	if in.Method != nil {
		if !domain.ValidPaymentMethod(*in.Method) {
			return nil, domain.Validation("Invalid payment method")
		}
		fields["method"] = *in.Method
	}
	if in.Status != nil {
		if !domain.ValidPaymentStatus(*in.Status) {
			return nil, domain.Validation("Invalid payment status")
		}
		fields["status"] = *in.Status
	}
	if in.PaymentDate != nil {
		d, err := date(*in.PaymentDate, "payment date")
		if err != nil {
			return nil, err
		}
		fields["payment_date"] = d
	}
	if len(fields) == 0 {
		return existing, nil
	}

	ok, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.StoreFailure("Failed to update payment")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *PaymentService) SoftDelete(ctx context.Context, id int64) (*domain.Payment, error) {
	p, err := s.softDelete(ctx, id)
	if err != nil {
		return nil, domain.Wrap("Error deleting payment: ", err)
	}
	if p != nil {
		s.invalidate(ctx)
	}
	return p, nil
}

func (s *PaymentService) softDelete(ctx context.Context, id int64) (*domain.Payment, error) {
	if err := requireID(id, "Payment ID is required for delete"); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	ok, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.StoreFailure("Failed to delete payment")
	}
	return existing, nil
}

// Summary 按状态汇总（笔数 + 金额）
func (s *PaymentService) Summary(ctx context.Context) ([]domain.PaymentStatusTotal, error) {
	out, err := cache.GetOrLoadJSON(s.reports, ctx, "payments:summary", s.cacheTTL, s.repo.Summary)
	if err != nil {
		return nil, domain.Wrap("Error getting payment summary: ", err)
	}
	return out, nil
}

// TotalByStatus 无匹配时为 0
func (s *PaymentService) TotalByStatus(ctx context.Context, status string) (decimal.Decimal, error) {
	out, err := s.totalByStatus(ctx, status)
	if err != nil {
		return decimal.Zero, domain.Wrap("Error getting total by status: ", err)
	}
	return out, nil
}

func (s *PaymentService) totalByStatus(ctx context.Context, status string) (decimal.Decimal, error) {
	if err := paymentStatus(status); err != nil {
		return decimal.Zero, err
	}
	return cache.GetOrLoadJSON(s.reports, ctx, "payments:total:"+status, s.cacheTTL, func(ctx context.Context) (decimal.Decimal, error) {
		return s.repo.TotalByStatus(ctx, status)
	})
}

func (s *PaymentService) invalidate(ctx context.Context) {
	_ = s.reports.Invalidate(ctx, paymentReportKeys)
}
