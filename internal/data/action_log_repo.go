package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/sunrise-rp/admin-api/internal/data/database"
	"github.com/sunrise-rp/admin-api/internal/data/pgxutil"
	"github.com/sunrise-rp/admin-api/internal/domain/model"
)

const (
	sortDirAsc  = "ASC"
	sortDirDesc = "DESC"

	defaultLogLimit = 100
	maxLogLimit     = 500
)

// ActionLogRepo provides read access to the game server's action log.
type ActionLogRepo struct {
	DB *sql.DB
}

// NewActionLogRepo creates a new ActionLogRepo.
func NewActionLogRepo(db *sql.DB) *ActionLogRepo {
	return &ActionLogRepo{DB: db}
}

// List retrieves action log rows matching the given filters.
func (r *ActionLogRepo) List(
	ctx context.Context,
	opts model.ActionLogListOptions,
) ([]*model.ActionLog, error) {
	queryOpts := r.buildQueryOptions(opts, false)
	query, args := database.BuildListQuery(queryOpts)

	var rowsOut []model.ActionLog
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ActionLog])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list action logs: %w", err)
	}

	res := make([]*model.ActionLog, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Count returns the number of rows matching the given filters, ignoring
// pagination.
func (r *ActionLogRepo) Count(
	ctx context.Context,
	opts model.ActionLogListOptions,
) (int64, error) {
	queryOpts := r.buildQueryOptions(opts, true)
	query, args := database.BuildListQuery(queryOpts)

	var count int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&count)
	}); err != nil {
		return 0, fmt.Errorf("failed to count action logs: %w", err)
	}
	return count, nil
}

// actionLogColumns returns the standard column list for action log queries.
func actionLogColumns() []string {
	return []string{
		"id",
		"type",
		"description",
		"logged_at",
	}
}

// buildQueryOptions maps the list filters onto query builder options.
func (r *ActionLogRepo) buildQueryOptions(
	opts model.ActionLogListOptions,
	countOnly bool,
) *database.ListQueryOptions {
	queryOpts := []database.ListQueryOption{}

	if countOnly {
		queryOpts = append(queryOpts, database.WithCountOnly())
	} else {
		limit := opts.Limit
		if limit <= 0 {
			limit = defaultLogLimit
		}
		if limit > maxLogLimit {
			limit = maxLogLimit
		}
		offset := max(opts.Offset, 0)

		sortCol, sortDir := validateSortOptions(opts.Sort, opts.Dir)
		queryOpts = append(queryOpts,
			database.WithColumns(actionLogColumns()...),
			database.WithOrderBy(sortCol, sortDir),
			database.WithLimit(limit),
			database.WithOffset(offset),
		)
	}

	if opts.Type != nil && strings.TrimSpace(*opts.Type) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("type", database.Equal, strings.TrimSpace(*opts.Type)),
		))
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("description", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}
	if opts.From != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("logged_at", database.GreaterThanOrEqual, *opts.From),
		))
	}
	if opts.To != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("logged_at", database.LessThan, *opts.To),
		))
	}

	return database.NewListQueryOptions("action_logs", queryOpts...)
}

// validateSortOptions validates and returns safe sort column and direction.
func validateSortOptions(sort, dir string) (string, string) {
	sortCol := "logged_at"
	sortDir := sortDirDesc

	if sort != "" {
		allowedSorts := map[string]string{
			"id":        "id",
			"type":      "type",
			"logged_at": "logged_at",
		}
		if validSort, ok := allowedSorts[strings.ToLower(strings.TrimSpace(sort))]; ok {
			sortCol = validSort
		}
	}
	if dir != "" {
		allowedDirs := map[string]string{
			"asc":  sortDirAsc,
			"desc": sortDirDesc,
		}
		if validDir, ok := allowedDirs[strings.ToLower(strings.TrimSpace(dir))]; ok {
			sortDir = validDir
		}
	}
	return sortCol, sortDir
}
