// Package repository implements data access for the demo entity on top
// of the common.Database abstraction.
package repository

import (
	"context"
	"strings"
	"time"

	"github.com/bitechdev/DemoManage/pkg/apperr"
	"github.com/bitechdev/DemoManage/pkg/common"
	"github.com/bitechdev/DemoManage/pkg/filterspec"
	"github.com/bitechdev/DemoManage/pkg/logger"
	"github.com/bitechdev/DemoManage/pkg/models"
)

// DemoRepository persists demos. All reads exclude soft-deleted rows;
// deletion itself is a status flip, never a row removal.
type DemoRepository struct {
	db common.Database
}

func NewDemoRepository(db common.Database) *DemoRepository {
	return &DemoRepository{db: db}
}

// RunInTransaction runs fn against a repository bound to one
// transaction; any error rolls the whole transaction back.
func (r *DemoRepository) RunInTransaction(ctx context.Context, fn func(*DemoRepository) error) error {
	return r.db.RunInTransaction(ctx, func(tx common.Database) error {
		return fn(NewDemoRepository(tx))
	})
}

// Insert stores a new demo row.
func (r *DemoRepository) Insert(ctx context.Context, demo *models.Demo) error {
	_, err := r.db.NewInsert().Model(demo).Exec(ctx)
	if err != nil {
		logger.Error("insert demo %s failed: %v", demo.DemoID, err)
		return apperr.Internal("Database error during data creation", err)
	}
	return nil
}

// GetByID fetches one demo. Soft-deleted rows are reported as not
// found, same as absent rows.
func (r *DemoRepository) GetByID(ctx context.Context, demoID string) (*models.Demo, error) {
	var demos []models.Demo
	err := r.db.NewSelect().
		Model(&demos).
		Where("demo_id = ?", demoID).
		Where("status <> ?", models.StatusDeleted).
		Limit(1).
		Scan(ctx, &demos)
	if err != nil {
		logger.Error("get demo %s failed: %v", demoID, err)
		return nil, apperr.Internal("Database error during data retrieval", err)
	}
	if len(demos) == 0 {
		return nil, apperr.NotFound("Demo", demoID)
	}
	return &demos[0], nil
}

// List runs the dynamic query pipeline: parse filters, compose one
// predicate, count, then fetch the page with the same predicate.
func (r *DemoRepository) List(ctx context.Context, params common.ListParams) ([]models.Demo, common.Pagination, error) {
	cols := models.DemoColumns()
	tree := filterspec.ParseFilters(params.Filters)
	predicate := filterspec.Compose(tree, params.Search, cols)

	var demos []models.Demo
	query := r.db.NewSelect().Model(&demos)
	if predicate != nil {
		query = query.Where(predicate.SQL, predicate.Args...)
	}

	totalCount, err := query.Count(ctx)
	if err != nil {
		logger.Error("count demos failed: %v", err)
		return nil, common.Pagination{}, apperr.Internal("Database error during data retrieval", err)
	}

	err = query.
		Order(resolveOrder(params.OrderBy, cols)).
		Limit(params.Limit).
		Offset(params.Offset).
		Scan(ctx, &demos)
	if err != nil {
		logger.Error("list demos failed: %v", err)
		return nil, common.Pagination{}, apperr.Internal("Database error during data retrieval", err)
	}

	pagination := common.Pagination{
		TotalCount: totalCount,
		Offset:     params.Offset,
		Limit:      params.Limit,
		TotalPages: common.TotalPages(totalCount, params.Limit),
	}
	return demos, pagination, nil
}

// resolveOrder validates an order_by value against the descriptor table.
// A leading "-" means descending. Unknown columns fall back to the
// default ordering rather than erroring.
func resolveOrder(orderBy string, cols filterspec.ColumnSet) string {
	direction := "ASC"
	column := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		column = orderBy[1:]
	}
	if column == "" || !cols.Has(column) {
		return "created_at DESC"
	}
	return column + " " + direction
}

// Update applies a column map to one demo.
func (r *DemoRepository) Update(ctx context.Context, demoID string, values map[string]interface{}) error {
	result, err := r.db.NewUpdate().
		Table(models.Demo{}.TableName()).
		SetMap(values).
		Where("demo_id = ?", demoID).
		Where("status <> ?", models.StatusDeleted).
		Exec(ctx)
	if err != nil {
		logger.Error("update demo %s failed: %v", demoID, err)
		return apperr.Internal("Database error during data update", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Demo", demoID)
	}
	return nil
}

// UpdateStatus flips the lifecycle state and optionally records error
// details alongside it.
func (r *DemoRepository) UpdateStatus(ctx context.Context, demoID, status, errorMessage, errorUserMessage, userID string) error {
	values := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
		"updated_by": userID,
	}
	if errorMessage != "" {
		values["error_message"] = errorMessage
	}
	if errorUserMessage != "" {
		values["error_user_message"] = errorUserMessage
	}
	return r.Update(ctx, demoID, values)
}

// UpdateIsActive toggles the active flag.
func (r *DemoRepository) UpdateIsActive(ctx context.Context, demoID string, isActive bool, userID string) error {
	return r.Update(ctx, demoID, map[string]interface{}{
		"is_active":  isActive,
		"updated_at": time.Now(),
		"updated_by": userID,
	})
}

// SoftDelete marks a demo deleted. The row stays; every read path
// filters it out from here on.
func (r *DemoRepository) SoftDelete(ctx context.Context, demoID, userID string) error {
	now := time.Now()
	return r.Update(ctx, demoID, map[string]interface{}{
		"status":     models.StatusDeleted,
		"is_active":  false,
		"deleted_at": now,
		"deleted_by": userID,
		"updated_at": now,
		"updated_by": userID,
	})
}
