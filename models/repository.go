package models

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the storage gateway for a single entity type.
type Repository[T any, ID comparable] interface {
	FindPage(ctx context.Context, req PageRequest) (Page[T], error)
	FindByID(ctx context.Context, id ID) (*T, error)
	FindAll(ctx context.Context, sort string) ([]T, error)
	Save(ctx context.Context, entity *T) (*T, error)
	Delete(ctx context.Context, entity *T) error
}

// Identifiable is satisfied by pointers to entities with a numeric primary key.
type Identifiable[T any] interface {
	*T
	Identifier() uint
}

func (c *Category) Identifier() uint { return c.ID }

func (p *Product) Identifier() uint { return p.ID }

var (
	_ Repository[Category, uint] = (*CategoriesRepository)(nil)
	_ Repository[Product, uint]   = (*ProductsRepository)(nil)
)

// GormRepository implements Repository on top of gorm.
type GormRepository[T any, PT Identifiable[T]] struct {
	db       *gorm.DB
	preloads []string
}

func NewGormRepository[T any, PT Identifiable[T]](db *gorm.DB, preloads ...string) *GormRepository[T, PT] {
	return &GormRepository[T, PT]{
		db:       db,
		preloads: preloads,
	}
}

func (r *GormRepository[T, PT]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	return q
}

func orderBy(sort string) clause.OrderByColumn {
	if sort == "" {
		sort = "id"
	}
	return clause.OrderByColumn{Column: clause.Column{Name: sort}}
}

func (r *GormRepository[T, PT]) FindPage(ctx context.Context, req PageRequest) (Page[T], error) {
	req = req.normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return Page[T]{}, translateError(err)
	}

	var items []T
	if err := r.query(ctx).
		Order(orderBy(req.Sort)).
		Order(orderBy("id")).
		Offset(req.Number * req.Size).
		Limit(req.Size).
		Find(&items).Error; err != nil {
		return Page[T]{}, translateError(err)
	}

	return NewPage(items, req, total), nil
}

func (r *GormRepository[T, PT]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := r.query(ctx).First(&entity, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &entity, nil
}

func (r *GormRepository[T, PT]) FindAll(ctx context.Context, sort string) ([]T, error) {
	var items []T
	if err := r.query(ctx).Order(orderBy(sort)).Find(&items).Error; err != nil {
		return nil, translateError(err)
	}
	return items, nil
}

// Save inserts entities without an identifier and fully updates the rest.
// created_at is never rewritten. The stored row is read back and returned.
func (r *GormRepository[T, PT]) Save(ctx context.Context, entity *T) (*T, error) {
	pt := PT(entity)

	if pt.Identifier() == 0 {
		if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
			return nil, translateError(err)
		}
		return r.FindByID(ctx, pt.Identifier())
	}

	res := r.db.WithContext(ctx).
		Model(entity).
		Select("*").
		Omit("CreatedAt", clause.Associations).
		Updates(entity)
	if res.Error != nil {
		return nil, translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, pt.Identifier())
}

func (r *GormRepository[T, PT]) Delete(ctx context.Context, entity *T) error {
	if PT(entity).Identifier() == 0 {
		return ErrNotFound
	}

	res := r.db.WithContext(ctx).Delete(entity)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
