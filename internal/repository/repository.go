package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fsanano/go-orders/internal/errs"
	"fsanano/go-orders/internal/model"
	"fsanano/go-orders/internal/sqlerr"
)

// Record is implemented by the persisted models.
type Record interface {
	model.User | model.Order | model.Offer
}

// Repository is the single-table data access shared by users, orders and
// offers. Every lookup by id turns a missing row into a not-found error.
type Repository[T Record] struct {
	db     *gorm.DB
	entity string
}

func NewUserRepository(db *gorm.DB) *Repository[model.User] {
	return &Repository[model.User]{db: db, entity: "user"}
}

func NewOrderRepository(db *gorm.DB) *Repository[model.Order] {
	return &Repository[model.Order]{db: db, entity: "order"}
}

func NewOfferRepository(db *gorm.DB) *Repository[model.Offer] {
	return &Repository[model.Offer]{db: db, entity: "offer"}
}

// List returns every row ordered by id.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	var rows []T
	if err := executor(ctx, r.db).Order("id").Find(&rows).Error; err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("failed to list %ss: %w", r.entity, err))
	}
	return rows, nil
}

func (r *Repository[T]) Get(ctx context.Context, id int64) (T, error) {
	return r.first(executor(ctx, r.db), id)
}

// GetForUpdate locks the row until the surrounding transaction ends.
// SQLite has no row locks and relies on its database-level write lock.
func (r *Repository[T]) GetForUpdate(ctx context.Context, id int64) (T, error) {
	return r.first(executor(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *Repository[T]) first(db *gorm.DB, id int64) (T, error) {
	var row T
	err := db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return row, r.notFound(id)
		}
		return row, sqlerr.HandleError(fmt.Errorf("failed to get %s %d: %w", r.entity, id, err))
	}
	return row, nil
}

// FindByIDs returns the rows whose id is in ids. Missing ids are skipped.
func (r *Repository[T]) FindByIDs(ctx context.Context, ids []int64) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []T
	if err := executor(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, sqlerr.HandleError(fmt.Errorf("failed to find %ss: %w", r.entity, err))
	}
	return rows, nil
}

// Create inserts row and fills in its generated id.
func (r *Repository[T]) Create(ctx context.Context, row *T) error {
	if err := executor(ctx, r.db).Create(row).Error; err != nil {
		return sqlerr.HandleError(fmt.Errorf("failed to create %s: %w", r.entity, err))
	}
	return nil
}

// Save writes every column of row, zero values included.
func (r *Repository[T]) Save(ctx context.Context, row *T) error {
	if err := executor(ctx, r.db).Save(row).Error; err != nil {
		return sqlerr.HandleError(fmt.Errorf("failed to update %s: %w", r.entity, err))
	}
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, id int64) error {
	res := executor(ctx, r.db).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return sqlerr.HandleError(fmt.Errorf("failed to delete %s %d: %w", r.entity, id, res.Error))
	}
	if res.RowsAffected == 0 {
		return r.notFound(id)
	}
	return nil
}

func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := executor(ctx, r.db).Model(new(T)).Count(&n).Error; err != nil {
		return 0, sqlerr.HandleError(fmt.Errorf("failed to count %ss: %w", r.entity, err))
	}
	return n, nil
}

func (r *Repository[T]) notFound(id int64) error {
	return errs.NewNotFoundError(fmt.Sprintf("%s %d not found", r.entity, id))
}
