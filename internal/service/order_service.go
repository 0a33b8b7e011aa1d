package service

import (
	"context"
	"strconv"
	"time"

	"go-gin-gorm-shop/internal/core/cache"
	"go-gin-gorm-shop/internal/domain"
)

const orderStatsKeys = "orders:stats:*"

type OrderService struct {
	repo     domain.OrderRepository
	reports  cache.Store
	cacheTTL time.Duration
	now      func() time.Time
}

// NewOrderService reports 为 nil 时统计接口不缓存
func NewOrderService(repo domain.OrderRepository, reports cache.Store, ttl time.Duration) *OrderService {
	if reports == nil {
		reports = cache.Nop{}
	}
	return &OrderService{repo: repo, reports: reports, cacheTTL: ttl, now: time.Now}
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	os, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, domain.Wrap("Error fetching orders: ", err)
	}
	return os, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := s.get(ctx, id)
	if err != nil {
		return nil, domain.Wrap("Error fetching order: ", err)
	}
	return o, nil
}

func (s *OrderService) get(ctx context.Context, id int64) (*domain.Order, error) {
	if err := requireID(id, "Order ID is required"); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *OrderService) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	os, err := s.listByCustomer(ctx, customerID)
	if err != nil {
		return nil, domain.Wrap("Error fetching orders by customer: ", err)
	}
	return os, nil
}

func (s *OrderService) listByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	cid, err := customer(customerID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByCustomer(ctx, cid)
}

func customer(customerID string) (int64, error) {
	if customerID == "" {
		return 0, domain.Validation("Customer ID is required")
	}
	return wholeNumberString(customerID, "Customer ID")
}

func (s *OrderService) ListByStatus(ctx context.Context, status string) ([]domain.Order, error) {
	os, err := s.listByStatus(ctx, status)
	if err != nil {
		return nil, domain.Wrap("Error fetching orders by status: ", err)
	}
	return os, nil
}

func (s *OrderService) listByStatus(ctx context.Context, status string) ([]domain.Order, error) {
	if status == "" {
		return nil, domain.Validation("Status is required")
	}
	if !domain.ValidOrderStatus(status) {
		return nil, domain.Validation("Invalid order status")
	}
	return s.repo.FindByStatus(ctx, status)
}

func (s *OrderService) ListByDateRange(ctx context.Context, start, end string) ([]domain.Order, error) {
	os, err := s.listByDateRange(ctx, start, end)
	if err != nil {
		return nil, domain.Wrap("Error fetching orders by date range: ", err)
	}
	return os, nil
}

func (s *OrderService) listByDateRange(ctx context.Context, start, end string) ([]domain.Order, error) {
	from, to, err := dateRange(start, end)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByDateRange(ctx, from, to)
}

func (s *OrderService) Create(ctx context.Context, in OrderFields) (*domain.Order, error) {
	o, err := s.create(ctx, in)
	if err != nil {
		return nil, domain.Wrap("Error creating order: ", err)
	}
	s.invalidate(ctx)
	return o, nil
}

func (s *OrderService) create(ctx context.Context, in OrderFields) (*domain.Order, error) {
	if blankNum(in.CustomerID) || blankNum(in.Total) {
		return nil, domain.Validation("Customer ID and total are required fields")
	}
	cid, err := wholeNumber(*in.CustomerID, "Customer ID")
	if err != nil {
		return nil, err
	}
	total, err := positive(*in.Total, "Total")
	if err != nil {
		return nil, err
	}
	status := domain.OrderPending
	if !blank(in.Status) {
		if !domain.ValidOrderStatus(*in.Status) {
			return nil, domain.Validation("Invalid order status")
		}
		status = *in.Status
	}
	orderDate, err := dateOrToday(in.OrderDate, "order date", s.now())
	if err != nil {
		return nil, err
	}
	var notes *string
	if !blank(in.Notes) {
		notes = in.Notes
	}

	return s.repo.Create(ctx, &domain.Order{
		CustomerID: cid,
		Total:      total,
		OrderDate:  orderDate,
		Status:     status,
		Notes:      notes,
	})
}

func (s *OrderService) Update(ctx context.Context, id int64, in OrderFields) (*domain.Order, error) {
	o, err := s.update(ctx, id, in)
	if err != nil {
		return nil, domain.Wrap("Error updating order: ", err)
	}
	if o != nil {
		s.invalidate(ctx)
	}
	return o, nil
}

func (s *OrderService) update(ctx context.Context, id int64, in OrderFields) (*domain.Order, error) {
	if err := requireID(id, "Order ID is required for update"); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Total != nil {
		total, err := positive(*in.Total, "Total")
		if err != nil {
			return nil, err
		}
		fields["total"] = total
	}
	if in.CustomerID != nil {
		cid, err := wholeNumber(*in.CustomerID, "Customer ID")
		if err != nil {
			return nil, err
		}
		fields["customer_id"] = cid
	}
	if in.Status != nil {
		if !domain.ValidOrderStatus(*in.Status) {
			return nil, domain.Validation("Invalid order status")
		}
		fields["status"] = *in.Status
	}
	if in.OrderDate != nil {
		d, err := date(*in.OrderDate, "order date")
		if err != nil {
			return nil, err
		}
		fields["order_date"] = d
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}
	if len(fields) == 0 {
		return existing, nil
	}

	ok, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.StoreFailure("Failed to update order")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *OrderService) SoftDelete(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := s.softDelete(ctx, id)
	if err != nil {
		return nil, domain.Wrap("Error deleting order: ", err)
	}
	if o != nil {
		s.invalidate(ctx)
	}
	return o, nil
}

func (s *OrderService) softDelete(ctx context.Context, id int64) (*domain.Order, error) {
	if err := requireID(id, "Order ID is required for delete"); err != nil {
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
		return nil, domain.StoreFailure("Failed to delete order")
	}
	return existing, nil
}

// Stats 按状态汇总（数量 + 金额）
func (s *OrderService) Stats(ctx context.Context) ([]domain.StatusTotal, error) {
	out, err := cache.GetOrLoadJSON(s.reports, ctx, "orders:stats:status", s.cacheTTL, s.repo.TotalsByStatus)
	if err != nil {
		return nil, domain.Wrap("Error getting order statistics: ", err)
	}
	return out, nil
}

func (s *OrderService) CustomerTotals(ctx context.Context, customerID string) (domain.CustomerTotals, error) {
	out, err := s.customerTotals(ctx, customerID)
	if err != nil {
		return domain.CustomerTotals{}, domain.Wrap("Error getting customer totals: ", err)
	}
	return out, nil
}

func (s *OrderService) customerTotals(ctx context.Context, customerID string) (domain.CustomerTotals, error) {
	cid, err := customer(customerID)
	if err != nil {
		return domain.CustomerTotals{}, err
	}
	key := "orders:stats:customer:" + strconv.FormatInt(cid, 10)
	return cache.GetOrLoadJSON(s.reports, ctx, key, s.cacheTTL, func(ctx context.Context) (domain.CustomerTotals, error) {
		return s.repo.TotalsByCustomer(ctx, cid)
	})
}

// MonthlyStats 年份须为 2000..2100；无数据返回空列表
func (s *OrderService) MonthlyStats(ctx context.Context, yearStr string) ([]domain.MonthlyStat, error) {
	out, err := s.monthlyStats(ctx, yearStr)
	if err != nil {
		return nil, domain.Wrap("Error getting monthly statistics: ", err)
	}
	return out, nil
}

func (s *OrderService) monthlyStats(ctx context.Context, yearStr string) ([]domain.MonthlyStat, error) {
	y, err := year(yearStr)
	if err != nil {
		return nil, err
	}
	key := "orders:stats:monthly:" + strconv.Itoa(y)
	out, err := cache.GetOrLoadJSON(s.reports, ctx, key, s.cacheTTL, func(ctx context.Context) ([]domain.MonthlyStat, error) {
		return s.repo.MonthlyStats(ctx, y)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.MonthlyStat{}
	}
	return out, nil
}

// invalidate 写操作后清理统计缓存；失败时依赖 TTL 过期
func (s *OrderService) invalidate(ctx context.Context) {
	_ = s.reports.Invalidate(ctx, orderStatsKeys)
}
