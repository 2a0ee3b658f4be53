package models

import "github.com/bitechdev/DemoManage/pkg/filterspec"

// demoColumns is the static descriptor table the filter engine resolves
// demo filters against. Columns absent here are not filterable and not
// orderable; identifier and audit-user columns are resolvable but kept
// out of free-text search.
var demoColumns = filterspec.NewColumnSet(
	filterspec.ColumnDescriptor{Name: "demo_id", Type: filterspec.Text},
	filterspec.ColumnDescriptor{Name: "name", Type: filterspec.Text, Searchable: true},
	filterspec.ColumnDescriptor{Name: "logo", Type: filterspec.Text, Searchable: true},
	filterspec.ColumnDescriptor{Name: "status", Type: filterspec.Enum},
	filterspec.ColumnDescriptor{Name: "is_active", Type: filterspec.Boolean},
	filterspec.ColumnDescriptor{Name: "error_message", Type: filterspec.Text, Searchable: true},
	filterspec.ColumnDescriptor{Name: "error_user_message", Type: filterspec.Text, Searchable: true},
	filterspec.ColumnDescriptor{Name: "created_at", Type: filterspec.DateTime},
	filterspec.ColumnDescriptor{Name: "updated_at", Type: filterspec.DateTime},
	filterspec.ColumnDescriptor{Name: "deleted_at", Type: filterspec.DateTime},
	filterspec.ColumnDescriptor{Name: "created_by", Type: filterspec.Text},
	filterspec.ColumnDescriptor{Name: "updated_by", Type: filterspec.Text},
	filterspec.ColumnDescriptor{Name: "deleted_by", Type: filterspec.Text},
)

// DemoColumns returns the demo entity's filter descriptor table.
func DemoColumns() filterspec.ColumnSet {
	return demoColumns
}
