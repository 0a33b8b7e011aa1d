package repo

import (
	"context"

	"gorm.io/gorm"

	"go-gin-gorm-shop/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) list(ctx context.Context, order string, where ...any) ([]domain.Order, error) {
	q := r.db.WithContext(ctx)
	if len(where) > 0 {
		q = q.Where(where[0], where[1:]...)
	}
	var orders []domain.Order
	if err := q.Order(order).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, "created_at DESC")
}

func (r *OrderRepo) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	return first[domain.Order](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *OrderRepo) FindByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return r.list(ctx, "order_date DESC", "customer_id = ?", customerID)
}

func (r *OrderRepo) FindByStatus(ctx context.Context, status string) ([]domain.Order, error) {
	return r.list(ctx, "order_date DESC", "status = ?", status)
}

// FindByDateRange 闭区间 [start, end]
func (r *OrderRepo) FindByDateRange(ctx context.Context, start, end domain.Date) ([]domain.Order, error) {
	return r.list(ctx, "order_date DESC", "order_date BETWEEN ? AND ?", start, end)
}

func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, o.ID)
}

func (r *OrderRepo) Update(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	return affected(r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Updates(fields))
}

func (r *OrderRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Order{}))
}

func (r *OrderRepo) TotalsByStatus(ctx context.Context) ([]domain.StatusTotal, error) {
	var out []domain.StatusTotal
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total), 0) AS total_amount").
		Group("status").
		Order("status").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *OrderRepo) TotalsByCustomer(ctx context.Context, customerID int64) (domain.CustomerTotals, error) {
	var out domain.CustomerTotals
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Select("COALESCE(SUM(total), 0) AS total_amount, COUNT(*) AS order_count").
		Where("customer_id = ?", customerID).
		Scan(&out).Error
	out.CustomerID = customerID
	return out, err
}

// MonthlyStats EXTRACT(MONTH ...) 在 mysql 与 postgres 下都可用
func (r *OrderRepo) MonthlyStats(ctx context.Context, year int) ([]domain.MonthlyStat, error) {
	from := domain.NewDate(year, 1, 1)
	to := domain.NewDate(year+1, 1, 1)
	var out []domain.MonthlyStat
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Select("EXTRACT(MONTH FROM order_date) AS month, COUNT(*) AS order_count, COALESCE(SUM(total), 0) AS total_amount").
		Where("order_date >= ? AND order_date < ?", from, to).
		Group("EXTRACT(MONTH FROM order_date)").
		Order("month").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
