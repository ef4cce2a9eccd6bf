// Package service holds the create/read/update/delete operations for users,
// orders and offers. Updates and deletes load the row under a lock and
// write it back inside one transaction.
package service

import (
	"context"

	"fsanano/go-orders/internal/model"
	"fsanano/go-orders/internal/repository"
)

// input is a request body that can be written onto a row of type T.
type input[T repository.Record] interface {
	apply(row *T) error
}

type store[T repository.Record] struct {
	tx   *repository.Transactor
	repo *repository.Repository[T]
}

func (s store[T]) list(ctx context.Context) ([]T, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

func (s store[T]) create(ctx context.Context, in input[T]) (*T, error) {
	row := new(T)
	if err := in.apply(row); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s store[T]) update(ctx context.Context, id int64, in input[T]) error {
	return s.tx.RunAtomic(ctx, func(ctx context.Context) error {
		row, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := in.apply(&row); err != nil {
			return err
		}
		return s.repo.Save(ctx, &row)
	})
}

func (s store[T]) delete(ctx context.Context, id int64) error {
	return s.tx.RunAtomic(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetForUpdate(ctx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
}

type UserService struct {
	store[model.User]
}

func NewUserService(tx *repository.Transactor, users *repository.Repository[model.User]) *UserService {
	return &UserService{store[model.User]{tx: tx, repo: users}}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.list(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (model.User, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new user and returns its id.
func (s *UserService) Create(ctx context.Context, in *UserInput) (int64, error) {
	u, err := s.create(ctx, in)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

func (s *UserService) Update(ctx context.Context, id int64, in *UserInput) error {
	return s.update(ctx, id, in)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.delete(ctx, id)
}

type OrderService struct {
	store[model.Order]
}

func NewOrderService(tx *repository.Transactor, orders *repository.Repository[model.Order]) *OrderService {
	return &OrderService{store[model.Order]{tx: tx, repo: orders}}
}

func (s *OrderService) List(ctx context.Context) ([]model.Order, error) {
	return s.list(ctx)
}

func (s *OrderService) Get(ctx context.Context, id int64) (model.Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *OrderService) Create(ctx context.Context, in *OrderInput) (int64, error) {
	o, err := s.create(ctx, in)
	if err != nil {
		return 0, err
	}
	return o.ID, nil
}

func (s *OrderService) Update(ctx context.Context, id int64, in *OrderInput) error {
	return s.update(ctx, id, in)
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	return s.delete(ctx, id)
}
