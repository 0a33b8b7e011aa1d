package domain

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

var OrderStatuses = []string{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

func ValidOrderStatus(s string) bool { return slices.Contains(OrderStatuses, s) }

type Order struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64           `gorm:"index;not null" json:"customer_id"`
	Total      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	OrderDate  Date            `gorm:"type:date;index;not null" json:"order_date"`
	Status     string          `gorm:"size:16;index;not null" json:"status"`
	Notes      *string         `gorm:"size:255" json:"notes"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Order) TableName() string { return "order_header" }

type StatusTotal struct {
	Status      string          `json:"status"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type CustomerTotals struct {
	CustomerID  int64           `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OrderCount  int64           `json:"order_count"`
}

type MonthlyStat struct {
	Month       int             `json:"month"`
	OrderCount  int64           `json:"order_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type OrderRepository interface {
	FindAll(ctx context.Context) ([]Order, error)
	FindByID(ctx context.Context, id int64) (*Order, error)
	FindByCustomer(ctx context.Context, customerID int64) ([]Order, error)
	FindByStatus(ctx context.Context, status string) ([]Order, error)
	FindByDateRange(ctx context.Context, start, end Date) ([]Order, error)
	Create(ctx context.Context, o *Order) (*Order, error)
	Update(ctx context.Context, id int64, fields map[string]any) (bool, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)

	TotalsByStatus(ctx context.Context) ([]StatusTotal, error)
	// TotalsByCustomer 无订单时返回 0 值，不返回 nil
	TotalsByCustomer(ctx context.Context, customerID int64) (CustomerTotals, error)
	MonthlyStats(ctx context.Context, year int) ([]MonthlyStat, error)
}
