package crud

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"stayhub-backend/pkg/logger"
)

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx, so repository
// methods run the same inside and outside a transaction
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository is the generic persistence layer. T is the entity struct,
// PT its pointer type carrying the Entity methods via the embedded
// Audit block.
type Repository[T any, PT interface {
	*T
	Entity
}] struct {
	db    *pgxpool.Pool
	table Table
	log   zerolog.Logger
}

func NewRepository[T any, PT interface {
	*T
	Entity
}](db *pgxpool.Pool, table Table) *Repository[T, PT] {
	return &Repository[T, PT]{
		db:    db,
		table: table,
		log:   logger.With("repository." + table.Name),
	}
}

func (r *Repository[T, PT]) Table() Table {
	return r.table
}

// Pool exposes the underlying pool for services that open transactions
func (r *Repository[T, PT]) Pool() *pgxpool.Pool {
	return r.db
}

// ===== READ =====

// GetByID returns (nil, nil) when no row matches. Callers that need a
// not-found error translate at the service layer.
func (r *Repository[T, PT]) GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (PT, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", r.columnList(), r.table.Name)
	if !includeDeleted {
		query += " AND deleted_at IS NULL"
	}

	return r.fetchOne(ctx, r.db, query, id)
}

// GetByIDForUpdate locks the row for the current transaction. Deleted
// rows are visible so restore can find them.
func (r *Repository[T, PT]) GetByIDForUpdate(ctx context.Context, q Querier, id uuid.UUID) (PT, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 FOR UPDATE", r.columnList(), r.table.Name)
	return r.fetchOne(ctx, q, query, id)
}

// GetOneBy returns the first live row matching column = value
func (r *Repository[T, PT]) GetOneBy(ctx context.Context, column string, value any) (PT, error) {
	if !r.table.HasColumn(column) {
		return nil, fmt.Errorf("unknown column %q on table %s", column, r.table.Name)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 AND deleted_at IS NULL LIMIT 1",
		r.columnList(), r.table.Name, column,
	)
	return r.fetchOne(ctx, r.db, query, value)
}

// GetByIDs returns live rows for an id set, in no particular order
func (r *Repository[T, PT]) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]PT, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ANY($1) AND deleted_at IS NULL",
		r.columnList(), r.table.Name)

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to fetch rows by ids")
		return nil, err
	}

	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[T])
	if err != nil {
		return nil, err
	}

	out := make([]PT, len(items))
	for i, item := range items {
		out[i] = PT(item)
	}
	return out, nil
}

// List returns one page of rows plus the total count for pagination meta
func (r *Repository[T, PT]) List(ctx context.Context, filter Filter) ([]PT, int, error) {
	filter = filter.Normalize()
	where, args := filter.buildWhere(r.table)

	// Total count before paging
	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", r.table.Name, where)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.log.Error().Err(err).Msg("Failed to count rows")
		return nil, 0, err
	}

	paging, pagingArgs := filter.pagingClause(len(args))
	query := fmt.Sprintf("SELECT %s FROM %s%s%s%s",
		r.columnList(), r.table.Name, where, filter.orderClause(r.table), paging)

	rows, err := r.db.Query(ctx, query, append(args, pagingArgs...)...)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to list rows")
		return nil, 0, err
	}

	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[T])
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to scan rows")
		return nil, 0, err
	}

	out := make([]PT, len(items))
	for i, item := range items {
		out[i] = PT(item)
	}
	return out, total, nil
}

// ===== WRITE =====

// Create inserts the entity with every column it declares. The audit
// block must already be stamped by the service.
func (r *Repository[T, PT]) Create(ctx context.Context, q Querier, entity PT) error {
	placeholders := make([]string, len(r.table.Columns))
	for i := range r.table.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		r.table.Name,
		strings.Join(r.table.Columns, ", "),
		strings.Join(placeholders, ", "),
	)

	args, err := columnValues(entity, r.table.Columns)
	if err != nil {
		return err
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		r.log.Error().Err(err).Str("id", entity.GetID().String()).Msg("Failed to insert row")
		return err
	}
	return nil
}

// Update applies a sanitized column map and returns the fresh row.
// Changes must already contain the refreshed updated_at/updated_by_id.
func (r *Repository[T, PT]) Update(ctx context.Context, q Querier, id uuid.UUID, changes map[string]any) (PT, error) {
	setClauses := make([]string, 0, len(changes))
	args := make([]any, 0, len(changes)+1)
	argCount := 0

	// Stable order keeps queries reproducible in logs and tests
	columns := make([]string, 0, len(changes))
	for col := range changes {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	for _, col := range columns {
		if !r.table.HasColumn(col) {
			continue
		}
		argCount++
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argCount))
		args = append(args, changes[col])
	}

	if len(setClauses) == 0 {
		return nil, ErrNoColumns
	}

	argCount++
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d AND deleted_at IS NULL RETURNING %s",
		r.table.Name, strings.Join(setClauses, ", "), argCount, r.columnList())

	entity, err := r.fetchOne(ctx, q, query, args...)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, ErrNotFound
	}
	return entity, nil
}

// SoftDelete stamps the deleted pair. Rows already deleted are left
// untouched, which makes repeated deletes idempotent.
func (r *Repository[T, PT]) SoftDelete(ctx context.Context, q Querier, id, actorID uuid.UUID) error {
	query := fmt.Sprintf(
		"UPDATE %s SET deleted_at = $1, deleted_by_id = $2 WHERE id = $3 AND deleted_at IS NULL",
		r.table.Name,
	)

	var deletedBy *uuid.UUID
	if actorID != uuid.Nil {
		deletedBy = &actorID
	}

	if _, err := q.Exec(ctx, query, time.Now(), deletedBy, id); err != nil {
		r.log.Error().Err(err).Str("id", id.String()).Msg("Failed to soft delete row")
		return err
	}
	return nil
}

// Restore clears the deleted pair atomically and refreshes the update stamp
func (r *Repository[T, PT]) Restore(ctx context.Context, q Querier, id, actorID uuid.UUID) error {
	query := fmt.Sprintf(
		"UPDATE %s SET deleted_at = NULL, deleted_by_id = NULL, updated_at = $1, updated_by_id = $2 WHERE id = $3",
		r.table.Name,
	)

	var updatedBy *uuid.UUID
	if actorID != uuid.Nil {
		updatedBy = &actorID
	}

	tag, err := q.Exec(ctx, query, time.Now(), updatedBy, id)
	if err != nil {
		r.log.Error().Err(err).Str("id", id.String()).Msg("Failed to restore row")
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// HardDelete removes the row permanently
func (r *Repository[T, PT]) HardDelete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.table.Name)

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error().Err(err).Str("id", id.String()).Msg("Failed to hard delete row")
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ===== HELPERS =====

func (r *Repository[T, PT]) columnList() string {
	return strings.Join(r.table.Columns, ", ")
}

func (r *Repository[T, PT]) fetchOne(ctx context.Context, q Querier, query string, args ...any) (PT, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		r.log.Error().Err(err).Msg("Failed to query row")
		return nil, err
	}

	entity, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByNameLax[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.log.Error().Err(err).Msg("Failed to scan row")
		return nil, err
	}
	return PT(entity), nil
}

// columnValues pulls the values for the given columns out of the
// entity struct by matching db tags, embedded structs included
func columnValues(entity any, columns []string) ([]any, error) {
	byTag := make(map[string]reflect.Value, len(columns))
	collectDBFields(reflect.ValueOf(entity), byTag)

	args := make([]any, len(columns))
	for i, col := range columns {
		v, ok := byTag[col]
		if !ok {
			return nil, fmt.Errorf("no struct field with db tag %q", col)
		}
		args[i] = v.Interface()
	}
	return args, nil
}

func collectDBFields(rv reflect.Value, out map[string]reflect.Value) {
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.Anonymous {
			collectDBFields(rv.Field(i), out)
			continue
		}
		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		out[tag] = rv.Field(i)
	}
}
