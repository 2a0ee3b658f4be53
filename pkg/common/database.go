package common

import "context"

// Database abstracts the underlying ORM so repositories work unchanged
// against GORM or Bun. Adapters live in pkg/common/adapters/database.
// There is no delete query: rows only ever leave visibility through the
// soft-delete status flip, which is an update.
type Database interface {
	NewSelect() SelectQuery
	NewInsert() InsertQuery
	NewUpdate() UpdateQuery

	RunInTransaction(ctx context.Context, fn func(Database) error) error
}

// SelectQuery is a fluent query builder for reads. The same built query
// serves the count and the data fetch so both see one predicate set.
type SelectQuery interface {
	Model(model interface{}) SelectQuery
	Table(table string) SelectQuery
	Where(query string, args ...interface{}) SelectQuery
	Order(order string) SelectQuery
	Limit(n int) SelectQuery
	Offset(n int) SelectQuery

	Count(ctx context.Context) (int, error)
	Scan(ctx context.Context, dest interface{}) error
}

type InsertQuery interface {
	Model(model interface{}) InsertQuery
	Table(table string) InsertQuery
	Exec(ctx context.Context) (Result, error)
}

type UpdateQuery interface {
	Table(table string) UpdateQuery
	SetMap(values map[string]interface{}) UpdateQuery
	Where(query string, args ...interface{}) UpdateQuery
	Exec(ctx context.Context) (Result, error)
}

type Result interface {
	RowsAffected() int64
}

// TableNameProvider lets models declare their table name.
type TableNameProvider interface {
	TableName() string
}
