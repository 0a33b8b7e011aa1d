package domain

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
	PaymentCancelled = "cancelled"
)

var PaymentStatuses = []string{PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded, PaymentCancelled}

var PaymentMethods = []string{"credit_card", "debit_card", "paypal", "bank_transfer", "cash", "check"}

func ValidPaymentStatus(s string) bool { return slices.Contains(PaymentStatuses, s) }
func ValidPaymentMethod(s string) bool { return slices.Contains(PaymentMethods, s) }

type Payment struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64           `gorm:"index;not null" json:"order_id"`
	Method      string          `gorm:"size:32;not null" json:"method"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentDate Date            `gorm:"type:date;index;not null" json:"payment_date"`
	Status      string          `gorm:"size:16;index;not null" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Payment) TableName() string { return "payments" }

type PaymentStatusTotal struct {
	Status string          `json:"status"`
	Count  int64           `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

type PaymentRepository interface {
	FindAll(ctx context.Context) ([]Payment, error)
	FindByID(ctx context.Context, id int64) (*Payment, error)
	FindByOrder(ctx context.Context, orderID int64) ([]Payment, error)
	FindByStatus(ctx context.Context, status string) ([]Payment, error)
	FindByDateRange(ctx context.Context, start, end Date) ([]Payment, error)
	Create(ctx context.Context, p *Payment) (*Payment, error)
	Update(ctx context.Context, id int64, fields map[string]any) (bool, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)

	Summary(ctx context.Context) ([]PaymentStatusTotal, error)
	TotalByStatus(ctx context.Context, status string) (decimal.Decimal, error)
}
