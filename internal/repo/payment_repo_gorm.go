package repo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-gin-gorm-shop/internal/domain"
)

type PaymentRepo struct{ db *gorm.DB }

func NewPaymentRepo(db *gorm.DB) *PaymentRepo { return &PaymentRepo{db: db} }

func (r *PaymentRepo) list(ctx context.Context, order string, where ...any) ([]domain.Payment, error) {
	q := r.db.WithContext(ctx)
	if len(where) > 0 {
		q = q.Where(where[0], where[1:]...)
	}
	var ps []domain.Payment
	if err := q.Order(order).Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *PaymentRepo) FindAll(ctx context.Context) ([]domain.Payment, error) {
	return r.list(ctx, "id")
}

func (r *PaymentRepo) FindByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return first[domain.Payment](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *PaymentRepo) FindByOrder(ctx context.Context, orderID int64) ([]domain.Payment, error) {
	return r.list(ctx, "id", "order_id = ?", orderID)
}

func (r *PaymentRepo) FindByStatus(ctx context.Context, status string) ([]domain.Payment, error) {
	return r.list(ctx, "id", "status = ?", status)
}

func (r *PaymentRepo) FindByDateRange(ctx context.Context, start, end domain.Date) ([]domain.Payment, error) {
	return r.list(ctx, "payment_date DESC", "payment_date BETWEEN ? AND ?", start, end)
}

func (r *PaymentRepo) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, p.ID)
}

func (r *PaymentRepo) Update(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	return affected(r.db.WithContext(ctx).Model(&domain.Payment{}).Where("id = ?", id).Updates(fields))
}

func (r *PaymentRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Payment{}))
}

func (r *PaymentRepo) Summary(ctx context.Context) ([]domain.PaymentStatusTotal, error) {
	var out []domain.PaymentStatusTotal
	err := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Group("status").
		Order("status").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TotalByStatus 没有匹配行时为 0
func (r *PaymentRepo) TotalByStatus(ctx context.Context, status string) (decimal.Decimal, error) {
	var row struct{ Total decimal.Decimal }
	err := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("status = ?", status).
		Scan(&row).Error
	return row.Total, err
}
