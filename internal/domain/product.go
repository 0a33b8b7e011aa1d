package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string          `gorm:"size:191;index;not null" json:"name"`
	Artist          string          `gorm:"size:191;not null" json:"artist"`
	GenreID         int64           `gorm:"index;not null" json:"genre_id"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	PublicationDate Date            `gorm:"type:date" json:"publication_date"`
	Description     *string         `gorm:"size:255" json:"description"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Product) TableName() string { return "products" }

type ProductRepository interface {
	FindAll(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id int64) (*Product, error)
	// FindByName 名称唯一性只在未软删的行之间比较
	FindByName(ctx context.Context, name string) (*Product, error)
	FindByGenre(ctx context.Context, genreID int64) ([]Product, error)
	Create(ctx context.Context, p *Product) (*Product, error)
	Update(ctx context.Context, id int64, fields map[string]any) (bool, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
	HardDelete(ctx context.Context, id int64) (bool, error)
}
