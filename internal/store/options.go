package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/yukihiko-shinoda/staticpress-e2e/internal/models"
)

// ErrOptionNotFound is returned when a named option row does not exist.
var ErrOptionNotFound = errors.New("option not found")

// OptionsStore reads wp_options rows. All statements are parameterized.
type OptionsStore struct {
	db QueryInterceptor
}

func NewOptionsStore(db QueryInterceptor) *OptionsStore {
	return &OptionsStore{db: db}
}

func (s *OptionsStore) Get(ctx context.Context, name string) (*models.Option, error) {
	query, args, err := sq.Select("option_name", "option_value", "autoload").
		From("wp_options").
		Where(sq.Eq{"option_name": name}).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, query, args...)
	var opt models.Option
	err = row.Scan(&opt.Name, &opt.Value, &opt.Autoload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &opt, nil
}

// ListNamespace returns every option row whose name starts with prefix,
// ordered by name. Used to verify that a reset left exactly the fixture keys.
func (s *OptionsStore) ListNamespace(ctx context.Context, prefix string) ([]models.Option, error) {
	query, args, err := sq.Select("option_name", "option_value", "autoload").
		From("wp_options").
		Where(sq.Like{"option_name": prefix + "%"}).
		OrderBy("option_name").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []models.Option
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.Name, &opt.Value, &opt.Autoload); err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}
