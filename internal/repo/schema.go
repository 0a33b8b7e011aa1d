package repo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go-gin-gorm-shop/internal/domain"
)

// Models 参与自动迁移的表
func Models() []any {
	return []any{&domain.User{}, &domain.Product{}, &domain.Order{}, &domain.Payment{}}
}

func AutoMigrate(db *gorm.DB) error { return db.AutoMigrate(Models()...) }

func strp(s string) *string { return &s }

// 初始商品目录
var seedProducts = []domain.Product{
	{Name: "Nevermind", Artist: "Nirvana", GenreID: 1, Price: decimal.RequireFromString("27.99"),
		PublicationDate: domain.NewDate(1991, 9, 24), Description: strp("Grunge revolution that defined the 90s")},
	{Name: "21", Artist: "Adele", GenreID: 2, Price: decimal.RequireFromString("25.50"),
		PublicationDate: domain.NewDate(2011, 1, 24), Description: strp("Emotional pop ballads with record-breaking sales")},
	{Name: "Illmatic", Artist: "Nas", GenreID: 3, Price: decimal.RequireFromString("29.99"),
		PublicationDate: domain.NewDate(1994, 4, 19), Description: strp("Hip-hop classic with poetic storytelling")},
	{Name: "Blue Train", Artist: "John Coltrane", GenreID: 4, Price: decimal.RequireFromString("24.75"),
		PublicationDate: domain.NewDate(1957, 9, 15), Description: strp("Essential hard bop jazz album")},
	{Name: "The Wall", Artist: "Pink Floyd", GenreID: 1, Price: decimal.RequireFromString("33.99"),
		PublicationDate: domain.NewDate(1979, 11, 30), Description: strp("Progressive rock opera with iconic tracks")},
	{Name: "Born to Die", Artist: "Lana Del Rey", GenreID: 2, Price: decimal.RequireFromString("28.25"),
		PublicationDate: domain.NewDate(2012, 1, 27), Description: strp("Melancholic pop with cinematic production")},
}

// SeedProducts 仅在 products 表为空时写入初始目录，返回写入条数
func SeedProducts(ctx context.Context, db *gorm.DB) (int, error) {
	var n int64
	if err := db.WithContext(ctx).Model(&domain.Product{}).Count(&n).Error; err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	rows := make([]domain.Product, len(seedProducts))
	copy(rows, seedProducts)
	if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}
