package crud

import (
	"fmt"

	"stayhub-backend/internal/shared/utils"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Condition is an extra equality constraint on a listing query
type Condition struct {
	Column string
	Value  any
}

// Filter is the listing contract shared by every entity
type Filter struct {
	Search         string
	IncludeDeleted bool
	Limit          int
	Offset         int
	OrderBy        string
	OrderDesc      bool
	Conditions     []Condition
}

// Normalize clamps paging values into range
func (f Filter) Normalize() Filter {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// WithCondition returns a copy of the filter with one more equality constraint
func (f Filter) WithCondition(column string, value any) Filter {
	f.Conditions = append(f.Conditions, Condition{Column: column, Value: value})
	return f
}

// buildWhere assembles the WHERE clause and its positional args,
// numbering placeholders from $1
func (f Filter) buildWhere(table Table) (string, []any) {
	var clauses []string
	var args []any
	argCount := 0

	// Soft-deleted rows are hidden unless explicitly requested
	if !f.IncludeDeleted {
		clauses = append(clauses, "deleted_at IS NULL")
	}

	for _, cond := range f.Conditions {
		if !table.HasColumn(cond.Column) {
			continue
		}
		argCount++
		clauses = append(clauses, fmt.Sprintf("%s = $%d", cond.Column, argCount))
		args = append(args, cond.Value)
	}

	if f.Search != "" && len(table.SearchColumns) > 0 {
		argCount++
		var searchClauses []string
		for _, col := range table.SearchColumns {
			searchClauses = append(searchClauses, fmt.Sprintf("%s ILIKE $%d", col, argCount))
		}
		clauses = append(clauses, "("+utils.JoinWithOr(searchClauses)+")")
		args = append(args, "%"+f.Search+"%")
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + utils.JoinWithAnd(clauses), args
}

// orderClause validates OrderBy against the table's real columns and
// falls back to the table default on anything unknown
func (f Filter) orderClause(table Table) string {
	if f.OrderBy != "" && table.HasColumn(f.OrderBy) {
		direction := "ASC"
		if f.OrderDesc {
			direction = "DESC"
		}
		return fmt.Sprintf(" ORDER BY %s %s", f.OrderBy, direction)
	}

	if table.DefaultOrder != "" {
		return " ORDER BY " + table.DefaultOrder
	}
	return " ORDER BY created_at DESC"
}

// pagingClause appends LIMIT/OFFSET placeholders after the given arg count
func (f Filter) pagingClause(argCount int) (string, []any) {
	clause := fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount+1, argCount+2)
	return clause, []any{f.Limit, f.Offset}
}
