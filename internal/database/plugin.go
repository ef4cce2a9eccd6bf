package database

import (
	"time"

	"gorm.io/gorm"

	"fsanano/go-orders/internal/metrics"
)

const startKey = "metrics:start"

// MetricsPlugin times every create/query/update/delete statement.
type MetricsPlugin struct {
	m *metrics.Metrics
}

func NewMetricsPlugin(m *metrics.Metrics) *MetricsPlugin {
	return &MetricsPlugin{m: m}
}

func (p *MetricsPlugin) Name() string {
	return "metrics"
}

func (p *MetricsPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()

	if err := cb.Create().Before("gorm:create").Register("metrics:before_create", p.start); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("metrics:after_create", p.observe("create")); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("metrics:before_query", p.start); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("metrics:after_query", p.observe("query")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("metrics:before_update", p.start); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("metrics:after_update", p.observe("update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("metrics:before_delete", p.start); err != nil {
		return err
	}
	return cb.Delete().After("gorm:delete").Register("metrics:after_delete", p.observe("delete"))
}

func (p *MetricsPlugin) start(db *gorm.DB) {
	db.InstanceSet(startKey, time.Now())
}

func (p *MetricsPlugin) observe(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(startKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		p.m.ObserveDBQuery(op, db.Statement.Table, start)
	}
}
