package repo

import (
	"context"

	"gorm.io/gorm"

	"go-gin-gorm-shop/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	var ps []domain.Product
	if err := r.db.WithContext(ctx).Order("id").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *ProductRepo) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	return first[domain.Product](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *ProductRepo) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	return first[domain.Product](r.db.WithContext(ctx).Where("name = ?", name))
}

func (r *ProductRepo) FindByGenre(ctx context.Context, genreID int64) ([]domain.Product, error) {
	var ps []domain.Product
	if err := r.db.WithContext(ctx).Where("genre_id = ?", genreID).Order("id").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, p.ID)
}

func (r *ProductRepo) Update(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	return affected(r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Updates(fields))
}

func (r *ProductRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{}))
}

func (r *ProductRepo) HardDelete(ctx context.Context, id int64) (bool, error) {
	return affected(r.db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(&domain.Product{}))
}
