package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/yukihiko-shinoda/staticpress-e2e/internal/models"
	srvErrors "github.com/yukihiko-shinoda/staticpress-e2e/pkg/errors"
)

// upsertSuffix gives wp_options inserts insert-or-update semantics keyed on
// the unique option_name column.
const upsertSuffix = "ON DUPLICATE KEY UPDATE option_value = VALUES(option_value), autoload = VALUES(autoload)"

// FixtureStore implements the per-test reset protocol against wp_options.
// Every operation runs in a single transaction: all deletes and upserts
// commit together or roll back together.
type FixtureStore struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

func NewFixtureStore(db *sql.DB) *FixtureStore {
	return &FixtureStore{
		db:     db,
		logger: zap.S().Named("fixtures"),
	}
}

// Reset deletes every row under the plugin namespace and upserts the fixture
// set, atomically. After it returns nil, exactly the keys in set exist for
// the namespace. Runs synchronously before the test body that depends on it.
func (s *FixtureStore) Reset(ctx context.Context, set models.FixtureSet) error {
	s.logger.Debugw("resetting fixtures", "set", set.Name, "keys", set.Keys())

	return s.withTx(ctx, func(tx QueryInterceptor) error {
		query, args, err := sq.Delete("wp_options").
			Where(sq.Like{"option_name": models.StaticPressNamespace + "%"}).
			ToSql()
		if err != nil {
			return srvErrors.NewFixtureError(models.StaticPressNamespace, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return srvErrors.NewFixtureError(models.StaticPressNamespace, err)
		}

		for _, opt := range set.Options {
			if err := upsertOption(ctx, tx, opt); err != nil {
				return srvErrors.NewFixtureError(opt.Name, err)
			}
		}
		return nil
	})
}

// ActivatePlugin flips the active_plugins row to exactly the plugin under
// test and pins the schema version so no upgrade screen interrupts the
// session. Runs in its own transaction.
func (s *FixtureStore) ActivatePlugin(ctx context.Context) error {
	return s.withTx(ctx, func(tx QueryInterceptor) error {
		active := models.Option{
			Name:     models.ActivePluginsOption,
			Value:    models.StaticPressActivePlugins,
			Autoload: "yes",
		}
		if err := upsertOption(ctx, tx, active); err != nil {
			return srvErrors.NewFixtureError(active.Name, err)
		}

		dbVersion := models.Option{
			Name:     models.DBVersionOption,
			Value:    models.PinnedDBVersion,
			Autoload: "yes",
		}
		if err := upsertOption(ctx, tx, dbVersion); err != nil {
			return srvErrors.NewFixtureError(dbVersion.Name, err)
		}
		return nil
	})
}

// withTx runs fn inside a transaction, rolling back on any error and
// committing otherwise. The deferred rollback guarantees release on every
// exit path, including panics.
func (s *FixtureStore) withTx(ctx context.Context, fn func(tx QueryInterceptor) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return srvErrors.NewFixtureError("", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(newTxInterceptor(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return srvErrors.NewFixtureError("", err)
	}
	return nil
}

func upsertOption(ctx context.Context, tx QueryInterceptor, opt models.Option) error {
	query, args, err := sq.Insert("wp_options").
		Columns("option_name", "option_value", "autoload").
		Values(opt.Name, opt.Value, opt.Autoload).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}
