package service

import (
	"context"
	"time"

	"go-gin-gorm-shop/internal/domain"
)

type ProductService struct {
	repo domain.ProductRepository
	now  func() time.Time
}

func NewProductService(repo domain.ProductRepository) *ProductService {
	return &ProductService{repo: repo, now: time.Now}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	ps, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, domain.Wrap("Error fetching products: ", err)
	}
	return ps, nil
}

// Get 查不到返回 (nil, nil)
func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return nil, domain.Wrap("Error fetching product: ", err)
	}
	return p, nil
}

func (s *ProductService) get(ctx context.Context, id int64) (*domain.Product, error) {
	if err := requireID(id, "Product ID is required"); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) ListByGenre(ctx context.Context, genreID string) ([]domain.Product, error) {
	ps, err := s.listByGenre(ctx, genreID)
	if err != nil {
		return nil, domain.Wrap("Error fetching products by genre: ", err)
	}
	return ps, nil
}

func (s *ProductService) listByGenre(ctx context.Context, genreID string) ([]domain.Product, error) {
	if genreID == "" {
		return nil, domain.Validation("Genre ID is required")
	}
	gid, err := wholeNumberString(genreID, "Genre ID")
	if err != nil {
		return nil, err
	}
	return s.repo.FindByGenre(ctx, gid)
}

func (s *ProductService) Create(ctx context.Context, in ProductFields) (*domain.Product, error) {
	p, err := s.create(ctx, in)
	if err != nil {
		return nil, domain.Wrap("Error creating product: ", err)
	}
	return p, nil
}

func (s *ProductService) create(ctx context.Context, in ProductFields) (*domain.Product, error) {
	if blank(in.Name) || blank(in.Artist) || blankNum(in.GenreID) || blankNum(in.Price) {
		return nil, domain.Validation("Name, artist, genre_id, and price are required fields")
	}
	genreID, err := wholeNumber(*in.GenreID, "Genre ID")
	if err != nil {
		return nil, err
	}
	price, err := positive(*in.Price, "Price")
	if err != nil {
		return nil, err
	}
	pub, err := dateOrToday(in.PublicationDate, "publication date", s.now())
	if err != nil {
		return nil, err
	}

	dup, err := s.repo.FindByName(ctx, *in.Name)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, domain.Conflict("Product name already exists")
	}

	return s.repo.Create(ctx, &domain.Product{
		Name:            *in.Name,
		Artist:          *in.Artist,
		GenreID:         genreID,
		Price:           price,
		PublicationDate: pub,
		Description:     in.Description,
	})
}

// Update merge-patch；目标不存在返回 (nil, nil)
func (s *ProductService) Update(ctx context.Context, id int64, in ProductFields) (*domain.Product, error) {
	p, err := s.update(ctx, id, in)
	if err != nil {
		return nil, domain.Wrap("Error updating product: ", err)
	}
	return p, nil
}

func (s *ProductService) update(ctx context.Context, id int64, in ProductFields) (*domain.Product, error) {
	if err := requireID(id, "Product ID is required for update"); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	fields := map[string]any{}
	if err := notEmpty(in.Name, "Name"); err != nil {
		return nil, err
	}
	if err := notEmpty(in.Artist, "Artist"); err != nil {
		return nil, err
	}
	if in.Price != nil {
		price, err := positive(*in.Price, "Price")
		if err != nil {
			return nil, err
		}
		fields["price"] = price
	}
	if in.GenreID != nil {
		gid, err := wholeNumber(*in.GenreID, "Genre ID")
		if err != nil {
			return nil, err
		}
		fields["genre_id"] = gid
	}
	if in.PublicationDate != nil {
		pub, err := date(*in.PublicationDate, "publication date")
		if err != nil {
			return nil, err
		}
		fields["publication_date"] = pub
	}
	if in.Name != nil && *in.Name != existing.Name {
		dup, err := s.repo.FindByName(ctx, *in.Name)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, domain.Conflict("Product name already exists")
		}
	}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Artist != nil {
		fields["artist"] = *in.Artist
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if len(fields) == 0 {
		return existing, nil
	}

	ok, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.StoreFailure("Failed to update product")
	}
	return s.repo.FindByID(ctx, id)
}

// SoftDelete 返回删除前的快照；已删除/不存在返回 (nil, nil)
func (s *ProductService) SoftDelete(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.remove(ctx, id, false)
	if err != nil {
		return nil, domain.Wrap("Error deleting product: ", err)
	}
	return p, nil
}

// HardDelete 物理删除，不可恢复
func (s *ProductService) HardDelete(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.remove(ctx, id, true)
	if err != nil {
		return nil, domain.Wrap("Error permanently deleting product: ", err)
	}
	return p, nil
}

func (s *ProductService) remove(ctx context.Context, id int64, hard bool) (*domain.Product, error) {
	msg, fail, del := "Product ID is required for delete", "Failed to delete product", s.repo.SoftDelete
	if hard {
		msg, fail, del = "Product ID is required for hard delete", "Failed to permanently delete product", s.repo.HardDelete
	}
	if err := requireID(id, msg); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	ok, err := del(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.StoreFailure(fail)
	}
	return existing, nil
}
