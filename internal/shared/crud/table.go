package crud

// Table describes how an entity maps to its Postgres table. Columns
// must match the db tags on the entity struct (audit block included).
type Table struct {
	Name string

	// Columns in select/insert order. Audit columns first, then the
	// entity's own columns.
	Columns []string

	// SearchColumns participate in ILIKE keyword search
	SearchColumns []string

	// OwnerColumn names the owner foreign key ("owner_id",
	// "author_id", ...). Empty for unowned tables.
	OwnerColumn string

	// DefaultOrder is the ORDER BY used when the caller does not pick
	// one, e.g. "created_at DESC"
	DefaultOrder string
}

// HasColumn reports whether name is a real column of the table
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// EntityColumns returns the non-audit columns
func (t Table) EntityColumns() []string {
	audit := make(map[string]bool, len(AuditColumns))
	for _, c := range AuditColumns {
		audit[c] = true
	}

	out := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if !audit[c] {
			out = append(out, c)
		}
	}
	return out
}
