package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fsanano/go-orders/internal/database/dbtest"
	"fsanano/go-orders/internal/errs"
	"fsanano/go-orders/internal/model"
	"fsanano/go-orders/internal/repository"
	"fsanano/go-orders/internal/service"
)

type services struct {
	users  *service.UserService
	orders *service.OrderService
	offers *service.OfferService
}

func newServices(t *testing.T) (services, *gorm.DB) {
	t.Helper()
	db := dbtest.New(t)
	tx := repository.NewTransactor(db)
	users := repository.NewUserRepository(db)
	orders := repository.NewOrderRepository(db)
	offers := repository.NewOfferRepository(db)

	return services{
		users:  service.NewUserService(tx, users),
		orders: service.NewOrderService(tx, orders),
		offers: service.NewOfferService(tx, offers, orders, users),
	}, db
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func ann() *service.UserInput {
	return &service.UserInput{FirstName: "Ann", LastName: "Lee", Age: intPtr(30), Email: "a@x.com", Role: "customer", Phone: "555"}
}

func fence() *service.OrderInput {
	return &service.OrderInput{
		Name:        "Fence",
		Description: "Paint the fence",
		StartDate:   "01/15/2024",
		EndDate:     "02/01/2024",
		Address:     "1 Main St",
		Price:       intPtr(1500),
	}
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
}

func TestUserService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)

	list, err := svc.users.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	id, err := svc.users.Create(ctx, ann())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := svc.users.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.User{ID: id, FirstName: "Ann", LastName: "Lee", Age: intPtr(30), Email: "a@x.com", Role: "customer", Phone: "555"}, got)

	in := ann()
	in.FirstName = "Anna"
	in.Age = nil
	require.NoError(t, svc.users.Update(ctx, id, in))

	got, err = svc.users.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.FirstName)
	assert.Nil(t, got.Age, "omitted optional field must be cleared")

	require.NoError(t, svc.users.Delete(ctx, id))
	_, err = svc.users.Get(ctx, id)
	assertStatus(t, err, http.StatusNotFound)
}

func TestUserService_MissingID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)

	assertStatus(t, svc.users.Update(ctx, 7, ann()), http.StatusNotFound)
	assertStatus(t, svc.users.Delete(ctx, 7), http.StatusNotFound)
}

func TestUserService_CreateMany(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)

	for range 5 {
		_, err := svc.users.Create(ctx, ann())
		require.NoError(t, err)
	}

	list, err := svc.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 5)
}

func TestOrderService_Dates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)

	in := fence()
	in.CustomerID = int64Ptr(3)
	id, err := svc.orders.Create(ctx, in)
	require.NoError(t, err)

	got, err := svc.orders.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "01/15/2024", got.StartDate.String())
	assert.Equal(t, "02/01/2024", got.EndDate.String())
	assert.Equal(t, 1500, got.Price)
	require.NotNil(t, got.CustomerID)
	assert.Equal(t, int64(3), *got.CustomerID)
	assert.Nil(t, got.ExecutorID)

	bad := fence()
	bad.EndDate = "2024-02-01"
	err = svc.orders.Update(ctx, id, bad)
	assertStatus(t, err, http.StatusBadRequest)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, []errs.FieldError{{Field: "end_date", Error: "must be in MM/DD/YYYY format"}}, httpErr.Errors)

	got, err = svc.orders.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "02/01/2024", got.EndDate.String(), "failed update must not change the row")
}

func TestOfferService_Views(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)

	userID, err := svc.users.Create(ctx, ann())
	require.NoError(t, err)
	orderID, err := svc.orders.Create(ctx, fence())
	require.NoError(t, err)

	first, err := svc.offers.Create(ctx, &service.OfferInput{OrderID: int64Ptr(orderID), ExecutorID: int64Ptr(userID)})
	require.NoError(t, err)
	second, err := svc.offers.Create(ctx, &service.OfferInput{OrderID: int64Ptr(orderID), ExecutorID: int64Ptr(99)})
	require.NoError(t, err)

	views, err := svc.offers.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, first, views[0].ID)
	require.NotNil(t, views[0].OrderName)
	require.NotNil(t, views[0].ExecutorName)
	assert.Equal(t, "Fence", *views[0].OrderName)
	assert.Equal(t, "Ann", *views[0].ExecutorName)

	assert.Equal(t, second, views[1].ID)
	assert.Equal(t, "Fence", *views[1].OrderName)
	assert.Nil(t, views[1].ExecutorName, "dangling executor renders as nil")

	require.NoError(t, svc.orders.Delete(ctx, orderID))

	view, err := svc.offers.Get(ctx, first)
	require.NoError(t, err)
	assert.Nil(t, view.OrderName)
	assert.Equal(t, "Ann", *view.ExecutorName)
}

func TestOfferService_EmptyAndMissing(t *testing.T) {
	ctx := context.Background()
	svc, _ := newServices(t)

	views, err := svc.offers.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)

	_, err = svc.offers.Get(ctx, 1)
	assertStatus(t, err, http.StatusNotFound)

	err = svc.offers.Update(ctx, 1, &service.OfferInput{OrderID: int64Ptr(1), ExecutorID: int64Ptr(1)})
	assertStatus(t, err, http.StatusNotFound)
}

func TestOfferService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, db := newServices(t)

	id, err := svc.offers.Create(ctx, &service.OfferInput{OrderID: int64Ptr(1), ExecutorID: int64Ptr(2)})
	require.NoError(t, err)

	require.NoError(t, svc.offers.Update(ctx, id, &service.OfferInput{OrderID: int64Ptr(5), ExecutorID: int64Ptr(6)}))

	var stored model.Offer
	require.NoError(t, db.First(&stored, id).Error)
	assert.Equal(t, model.Offer{ID: id, OrderID: 5, ExecutorID: 6}, stored)

	require.NoError(t, svc.offers.Delete(ctx, id))
	assertStatus(t, svc.offers.Delete(ctx, id), http.StatusNotFound)
}
