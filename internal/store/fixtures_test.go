package store_test

import (
	"context"
	"database/sql"
	"errors"

	"github.com/DATA-DOG/go-sqlmock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yukihiko-shinoda/staticpress-e2e/internal/models"
	"github.com/yukihiko-shinoda/staticpress-e2e/internal/store"
	srvErrors "github.com/yukihiko-shinoda/staticpress-e2e/pkg/errors"
)

const (
	deleteNamespaceSQL = "DELETE FROM wp_options WHERE option_name LIKE ?"
	upsertOptionSQL    = "INSERT INTO wp_options (option_name,option_value,autoload) VALUES (?,?,?) " +
		"ON DUPLICATE KEY UPDATE option_value = VALUES(option_value), autoload = VALUES(autoload)"
)

// expectReset registers the full transactional reset sequence: one namespace
// delete followed by one upsert per fixture row, committed together.
func expectReset(mock sqlmock.Sqlmock, set models.FixtureSet) {
	mock.ExpectBegin()
	mock.ExpectExec(deleteNamespaceSQL).
		WithArgs(models.StaticPressNamespace + "%").
		WillReturnResult(sqlmock.NewResult(0, int64(len(set.Options))))
	for _, opt := range set.Options {
		mock.ExpectExec(upsertOptionSQL).
			WithArgs(opt.Name, opt.Value, opt.Autoload).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()
}

var _ = Describe("FixtureStore", func() {
	var (
		ctx  context.Context
		db   *sql.DB
		mock sqlmock.Sqlmock
		s    *store.Store
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, mock, err = sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db)
	})

	AfterEach(func() {
		Expect(mock.ExpectationsWereMet()).To(Succeed())
		mock.ExpectClose()
		Expect(s.Close()).To(Succeed())
	})

	Context("Reset", func() {
		// Given a store with stale namespaced rows
		// When the reset protocol runs
		// Then deletes and upserts commit in one transaction
		It("should delete the namespace and upsert the fixture set in one transaction", func() {
			set := models.StaticPressFixtures()
			expectReset(mock, set)

			Expect(s.Fixtures().Reset(ctx, set)).To(Succeed())
		})

		// Given a reset that already ran
		// When the protocol runs a second time
		// Then the same statement sequence executes (upsert idempotence)
		It("should be repeatable back to back", func() {
			set := models.StaticPressFixtures()
			expectReset(mock, set)
			expectReset(mock, set)

			Expect(s.Fixtures().Reset(ctx, set)).To(Succeed())
			Expect(s.Fixtures().Reset(ctx, set)).To(Succeed())
		})

		// Given a database failure mid-protocol
		// When the delete statement errors
		// Then the transaction rolls back and a FixtureError surfaces
		It("should roll back on failure", func() {
			mock.ExpectBegin()
			mock.ExpectExec(deleteNamespaceSQL).
				WithArgs(models.StaticPressNamespace + "%").
				WillReturnError(errors.New("connection lost"))
			mock.ExpectRollback()

			err := s.Fixtures().Reset(ctx, models.StaticPressFixtures())
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsFixtureError(err)).To(BeTrue())
		})

		It("should roll back when an upsert fails and name the key", func() {
			set := models.StaticPressFixtures()
			mock.ExpectBegin()
			mock.ExpectExec(deleteNamespaceSQL).
				WithArgs(models.StaticPressNamespace + "%").
				WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec(upsertOptionSQL).
				WithArgs(set.Options[0].Name, set.Options[0].Value, set.Options[0].Autoload).
				WillReturnError(errors.New("constraint violation"))
			mock.ExpectRollback()

			err := s.Fixtures().Reset(ctx, set)
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsFixtureError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring(set.Options[0].Name))
		})
	})

	Context("ActivatePlugin", func() {
		It("should upsert the serialized plugin list and pin the schema version", func() {
			mock.ExpectBegin()
			mock.ExpectExec(upsertOptionSQL).
				WithArgs(models.ActivePluginsOption, models.StaticPressActivePlugins, "yes").
				WillReturnResult(sqlmock.NewResult(1, 1))
			mock.ExpectExec(upsertOptionSQL).
				WithArgs(models.DBVersionOption, models.PinnedDBVersion, "yes").
				WillReturnResult(sqlmock.NewResult(1, 1))
			mock.ExpectCommit()

			Expect(s.Fixtures().ActivatePlugin(ctx)).To(Succeed())
		})
	})
})
