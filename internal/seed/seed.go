// Package seed loads fixture rows into an empty or existing store.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"fsanano/go-orders/internal/model"
	"fsanano/go-orders/internal/repository"
)

// Fixtures is the file format read by Load:
//
//	{"users": [...], "orders": [...], "offers": [...]}
//
// Rows carry explicit ids and use the same JSON shape as the API.
type Fixtures struct {
	Users  []model.User  `json:"users"`
	Orders []model.Order `json:"orders"`
	Offers []model.Offer `json:"offers"`
}

// Load reads fixtures from path.
func Load(path string) (*Fixtures, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

func Decode(r io.Reader) (*Fixtures, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var fx Fixtures
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}
	return &fx, nil
}

type Seeder struct {
	tx     *repository.Transactor
	users  *repository.Repository[model.User]
	orders *repository.Repository[model.Order]
	offers *repository.Repository[model.Offer]
	log    zerolog.Logger
}

func NewSeeder(
	tx *repository.Transactor,
	users *repository.Repository[model.User],
	orders *repository.Repository[model.Order],
	offers *repository.Repository[model.Offer],
	log zerolog.Logger,
) *Seeder {
	return &Seeder{tx: tx, users: users, orders: orders, offers: offers, log: log}
}

// Run inserts every fixture in one transaction. Nothing is written when a
// row fails, e.g. on a duplicate id.
//
// Postgres sequences are not advanced past explicit ids; reset them before
// creating rows through the API.
func (s *Seeder) Run(ctx context.Context, fx *Fixtures) error {
	err := s.tx.RunAtomic(ctx, func(ctx context.Context) error {
		for i := range fx.Users {
			if err := s.users.Create(ctx, &fx.Users[i]); err != nil {
				return err
			}
		}
		for i := range fx.Orders {
			if err := s.orders.Create(ctx, &fx.Orders[i]); err != nil {
				return err
			}
		}
		for i := range fx.Offers {
			if err := s.offers.Create(ctx, &fx.Offers[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info().
		Int("users", len(fx.Users)).
		Int("orders", len(fx.Orders)).
		Int("offers", len(fx.Offers)).
		Msg("fixtures loaded")
	return nil
}

// Counts reports the number of rows per table.
func (s *Seeder) Counts(ctx context.Context) (users, orders, offers int64, err error) {
	if users, err = s.users.Count(ctx); err != nil {
		return
	}
	if orders, err = s.orders.Count(ctx); err != nil {
		return
	}
	offers, err = s.offers.Count(ctx)
	return
}
