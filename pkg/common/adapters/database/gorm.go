package database

import (
	"context"

	"github.com/bitechdev/DemoManage/pkg/common"
	"gorm.io/gorm"
)

// GormAdapter adapts GORM to the common.Database interface.
type GormAdapter struct {
	db *gorm.DB
}

// NewGormAdapter creates a new GORM adapter
func NewGormAdapter(db *gorm.DB) *GormAdapter {
	return &GormAdapter{db: db}
}

func (g *GormAdapter) NewSelect() common.SelectQuery {
	return &GormSelectQuery{db: g.db}
}

func (g *GormAdapter) NewInsert() common.InsertQuery {
	return &GormInsertQuery{db: g.db}
}

func (g *GormAdapter) NewUpdate() common.UpdateQuery {
	return &GormUpdateQuery{db: g.db}
}

func (g *GormAdapter) RunInTransaction(ctx context.Context, fn func(common.Database) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormAdapter{db: tx})
	})
}

// GormSelectQuery implements SelectQuery for GORM
type GormSelectQuery struct {
	db *gorm.DB
}

func (g *GormSelectQuery) Model(model interface{}) common.SelectQuery {
	g.db = g.db.Model(model)
	return g
}

func (g *GormSelectQuery) Table(table string) common.SelectQuery {
	g.db = g.db.Table(table)
	return g
}

func (g *GormSelectQuery) Where(query string, args ...interface{}) common.SelectQuery {
	g.db = g.db.Where(query, args...)
	return g
}

func (g *GormSelectQuery) Order(order string) common.SelectQuery {
	g.db = g.db.Order(order)
	return g
}

func (g *GormSelectQuery) Limit(n int) common.SelectQuery {
	g.db = g.db.Limit(n)
	return g
}

func (g *GormSelectQuery) Offset(n int) common.SelectQuery {
	g.db = g.db.Offset(n)
	return g
}

func (g *GormSelectQuery) Count(ctx context.Context) (int, error) {
	var count int64
	err := g.db.WithContext(ctx).Count(&count).Error
	return int(count), err
}

func (g *GormSelectQuery) Scan(ctx context.Context, dest interface{}) error {
	return g.db.WithContext(ctx).Find(dest).Error
}

// GormInsertQuery implements InsertQuery for GORM
type GormInsertQuery struct {
	db    *gorm.DB
	model interface{}
}

func (g *GormInsertQuery) Model(model interface{}) common.InsertQuery {
	g.model = model
	return g
}

func (g *GormInsertQuery) Table(table string) common.InsertQuery {
	g.db = g.db.Table(table)
	return g
}

func (g *GormInsertQuery) Exec(ctx context.Context) (common.Result, error) {
	result := g.db.WithContext(ctx).Create(g.model)
	return &GormResult{result: result}, result.Error
}

// GormUpdateQuery implements UpdateQuery for GORM
type GormUpdateQuery struct {
	db      *gorm.DB
	updates map[string]interface{}
}

func (g *GormUpdateQuery) Table(table string) common.UpdateQuery {
	g.db = g.db.Table(table)
	return g
}

func (g *GormUpdateQuery) SetMap(values map[string]interface{}) common.UpdateQuery {
	g.updates = values
	return g
}

func (g *GormUpdateQuery) Where(query string, args ...interface{}) common.UpdateQuery {
	g.db = g.db.Where(query, args...)
	return g
}

func (g *GormUpdateQuery) Exec(ctx context.Context) (common.Result, error) {
	result := g.db.WithContext(ctx).Updates(g.updates)
	return &GormResult{result: result}, result.Error
}

// GormResult implements Result for GORM
type GormResult struct {
	result *gorm.DB
}

func (g *GormResult) RowsAffected() int64 {
	return g.result.RowsAffected
}
