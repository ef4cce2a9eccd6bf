package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fsanano/go-orders/internal/config"
	"fsanano/go-orders/internal/database"
	"fsanano/go-orders/internal/database/dbtest"
	"fsanano/go-orders/internal/metrics"
	"fsanano/go-orders/internal/model"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := database.Open(config.DatabaseConfig{Driver: "mysql", URL: "x", MaxOpenConns: 1}, zerolog.Nop(), nil)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestMigrate_CreatesTables(t *testing.T) {
	db := dbtest.New(t)

	for _, table := range []string{"user", "order", "offer"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	// Running it again on an existing schema is a no-op.
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Ping(context.Background(), db))
}

func TestMetricsPlugin_ObservesStatements(t *testing.T) {
	m := metrics.New()
	db := dbtest.NewWithMetrics(t, m)

	user := model.User{FirstName: "Ann", LastName: "Lee", Email: "a@x.com", Role: "customer", Phone: "555"}
	require.NoError(t, db.Create(&user).Error)

	var got model.User
	require.NoError(t, db.First(&got, user.ID).Error)

	count, err := testutil.GatherAndCount(m.Registry(), "go_orders_db_query_duration_seconds")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, 2)
}

func TestDate_RoundTripsThroughStore(t *testing.T) {
	db := dbtest.New(t)

	order := model.Order{
		Name:        "Fence",
		Description: "Paint the fence",
		StartDate:   model.NewDate(2024, time.March, 1),
		EndDate:     model.NewDate(2024, time.March, 31),
		Address:     "Main st. 1",
		Price:       1500,
	}
	require.NoError(t, db.Create(&order).Error)

	var got model.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, "03/01/2024", got.StartDate.String())
	assert.Equal(t, "03/31/2024", got.EndDate.String())
	assert.Nil(t, got.CustomerID)
}
