package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testTable = Table{
	Name:          "listings",
	Columns:       append(append([]string{}, AuditColumns...), "name", "slug", "state", "host_id"),
	SearchColumns: []string{"name", "slug"},
	OwnerColumn:   "host_id",
	DefaultOrder:  "created_at DESC",
}

func TestFilterNormalize(t *testing.T) {
	tests := []struct {
		name       string
		in         Filter
		wantLimit  int
		wantOffset int
	}{
		{"zero limit gets default", Filter{}, DefaultLimit, 0},
		{"negative limit gets default", Filter{Limit: -5}, DefaultLimit, 0},
		{"oversized limit is clamped", Filter{Limit: 500}, MaxLimit, 0},
		{"negative offset is clamped", Filter{Limit: 10, Offset: -3}, 10, 0},
		{"valid values pass through", Filter{Limit: 42, Offset: 84}, 42, 84},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Equal(t, tt.wantOffset, got.Offset)
		})
	}
}

func TestFilterWithConditionCopies(t *testing.T) {
	base := Filter{}
	a := base.WithCondition("state", "published")
	b := base.WithCondition("state", "draft")

	assert.Empty(t, base.Conditions)
	assert.Equal(t, "published", a.Conditions[0].Value)
	assert.Equal(t, "draft", b.Conditions[0].Value)
}

func TestBuildWhereHidesDeletedByDefault(t *testing.T) {
	where, args := Filter{}.buildWhere(testTable)

	assert.Equal(t, " WHERE deleted_at IS NULL", where)
	assert.Empty(t, args)
}

func TestBuildWhereIncludeDeleted(t *testing.T) {
	where, args := Filter{IncludeDeleted: true}.buildWhere(testTable)

	assert.Equal(t, "", where)
	assert.Empty(t, args)
}

func TestBuildWhereConditions(t *testing.T) {
	f := Filter{}.
		WithCondition("state", "published").
		WithCondition("host_id", "abc")
	where, args := f.buildWhere(testTable)

	assert.Equal(t, " WHERE deleted_at IS NULL AND state = $1 AND host_id = $2", where)
	assert.Equal(t, []any{"published", "abc"}, args)
}

func TestBuildWhereSkipsUnknownColumns(t *testing.T) {
	f := Filter{}.WithCondition("password", "x'; DROP TABLE listings;--")
	where, args := f.buildWhere(testTable)

	assert.Equal(t, " WHERE deleted_at IS NULL", where)
	assert.Empty(t, args)
}

func TestBuildWhereSearchSharesOneArg(t *testing.T) {
	f := Filter{Search: "villa"}
	where, args := f.buildWhere(testTable)

	assert.Equal(t, " WHERE deleted_at IS NULL AND (name ILIKE $1 OR slug ILIKE $1)", where)
	assert.Equal(t, []any{"%villa%"}, args)
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		table  Table
		want   string
	}{
		{"known column ascending", Filter{OrderBy: "name"}, testTable, " ORDER BY name ASC"},
		{"known column descending", Filter{OrderBy: "name", OrderDesc: true}, testTable, " ORDER BY name DESC"},
		{"unknown column falls back", Filter{OrderBy: "evil; DROP"}, testTable, " ORDER BY created_at DESC"},
		{"empty falls back to table default", Filter{}, testTable, " ORDER BY created_at DESC"},
		{"no default falls back to created_at", Filter{}, Table{Columns: []string{"id"}}, " ORDER BY created_at DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.orderClause(tt.table))
		})
	}
}

func TestPagingClause(t *testing.T) {
	clause, args := Filter{Limit: 20, Offset: 40}.pagingClause(2)

	assert.Equal(t, " LIMIT $3 OFFSET $4", clause)
	assert.Equal(t, []any{20, 40}, args)
}

func TestTableEntityColumns(t *testing.T) {
	cols := testTable.EntityColumns()
	assert.Equal(t, []string{"name", "slug", "state", "host_id"}, cols)
}
