package filterspec

// ColumnType is the semantic type a column dispatches on. The same
// operator token means different things for text, boolean and enum
// columns, so dispatch is always by type first.
type ColumnType int

const (
	Number ColumnType = iota
	Text
	Boolean
	Enum
	DateTime
)

// ColumnDescriptor describes one filterable column of an entity.
// Descriptor tables are declared statically per entity; nothing is
// discovered through reflection at query time.
type ColumnDescriptor struct {
	Name       string
	Type       ColumnType
	Searchable bool
}

// ColumnSet is an entity's descriptor table with by-name lookup.
type ColumnSet struct {
	byName  map[string]ColumnDescriptor
	ordered []ColumnDescriptor
}

func NewColumnSet(columns ...ColumnDescriptor) ColumnSet {
	set := ColumnSet{byName: make(map[string]ColumnDescriptor, len(columns))}
	for _, col := range columns {
		if _, dup := set.byName[col.Name]; dup {
			continue
		}
		set.byName[col.Name] = col
		set.ordered = append(set.ordered, col)
	}
	return set
}

// Lookup resolves a column by name.
func (s ColumnSet) Lookup(name string) (ColumnDescriptor, bool) {
	col, ok := s.byName[name]
	return col, ok
}

// Has reports whether the set contains a column of the given name.
func (s ColumnSet) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Searchable returns the text columns free-text search spans, in
// declaration order.
func (s ColumnSet) Searchable() []ColumnDescriptor {
	var cols []ColumnDescriptor
	for _, col := range s.ordered {
		if col.Type == Text && col.Searchable {
			cols = append(cols, col)
		}
	}
	return cols
}
