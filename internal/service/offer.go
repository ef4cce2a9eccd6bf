package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"fsanano/go-orders/internal/model"
	"fsanano/go-orders/internal/repository"
)

// OfferService stores offers and renders them with the referenced order
// name and executor first name.
type OfferService struct {
	store[model.Offer]
	orders *repository.Repository[model.Order]
	users  *repository.Repository[model.User]
}

func NewOfferService(
	tx *repository.Transactor,
	offers *repository.Repository[model.Offer],
	orders *repository.Repository[model.Order],
	users *repository.Repository[model.User],
) *OfferService {
	return &OfferService{
		store:  store[model.Offer]{tx: tx, repo: offers},
		orders: orders,
		users:  users,
	}
}

// List returns every offer in display form. References are resolved with
// one lookup per table, run concurrently.
func (s *OfferService) List(ctx context.Context) ([]model.OfferView, error) {
	offers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, offers)
}

func (s *OfferService) Get(ctx context.Context, id int64) (model.OfferView, error) {
	offer, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.OfferView{}, err
	}

	views, err := s.views(ctx, []model.Offer{offer})
	if err != nil {
		return model.OfferView{}, err
	}
	return views[0], nil
}

func (s *OfferService) Create(ctx context.Context, in *OfferInput) (int64, error) {
	o, err := s.create(ctx, in)
	if err != nil {
		return 0, err
	}
	return o.ID, nil
}

func (s *OfferService) Update(ctx context.Context, id int64, in *OfferInput) error {
	return s.update(ctx, id, in)
}

func (s *OfferService) Delete(ctx context.Context, id int64) error {
	return s.delete(ctx, id)
}

// views joins offers with order names and executor first names. A reference
// to a deleted row renders as nil.
func (s *OfferService) views(ctx context.Context, offers []model.Offer) ([]model.OfferView, error) {
	orderIDs := make([]int64, 0, len(offers))
	userIDs := make([]int64, 0, len(offers))
	for _, o := range offers {
		orderIDs = append(orderIDs, o.OrderID)
		userIDs = append(userIDs, o.ExecutorID)
	}

	var (
		orderNames = make(map[int64]string)
		userNames  = make(map[int64]string)
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		orders, err := s.orders.FindByIDs(gctx, unique(orderIDs))
		if err != nil {
			return err
		}
		for _, o := range orders {
			orderNames[o.ID] = o.Name
		}
		return nil
	})

	g.Go(func() error {
		users, err := s.users.FindByIDs(gctx, unique(userIDs))
		if err != nil {
			return err
		}
		for _, u := range users {
			userNames[u.ID] = u.FirstName
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	views := make([]model.OfferView, 0, len(offers))
	for _, o := range offers {
		v := model.OfferView{ID: o.ID}
		if name, ok := orderNames[o.OrderID]; ok {
			v.OrderName = &name
		}
		if name, ok := userNames[o.ExecutorID]; ok {
			v.ExecutorName = &name
		}
		views = append(views, v)
	}
	return views, nil
}

func unique(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
