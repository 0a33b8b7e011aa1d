package repo

import (
	"context"

	"gorm.io/gorm"

	"go-gin-gorm-shop/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return first[domain.User](r.db.WithContext(ctx).Where("id = ?", id))
}

// FindByEmail 精确匹配（区分大小写由库的 collation 决定）
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return first[domain.User](r.db.WithContext(ctx).Where("email = ?", email))
}

// Create 写入后按 id 回读
func (r *UserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, u.ID)
}

func (r *UserRepo) Update(ctx context.Context, id int64, fields map[string]any) (bool, error) {
	return affected(r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(fields))
}

func (r *UserRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	return affected(r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{}))
}

func (r *UserRepo) HardDelete(ctx context.Context, id int64) (bool, error) {
	return affected(r.db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(&domain.User{}))
}
