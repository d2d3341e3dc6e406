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
)

const (
	getOptionSQL     = "SELECT option_name, option_value, autoload FROM wp_options WHERE option_name = ?"
	listNamespaceSQL = "SELECT option_name, option_value, autoload FROM wp_options WHERE option_name LIKE ? ORDER BY option_name"
)

var _ = Describe("OptionsStore", func() {
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

	Context("Get", func() {
		It("should return the named option", func() {
			mock.ExpectQuery(getOptionSQL).
				WithArgs(models.OptionStaticURL).
				WillReturnRows(sqlmock.NewRows([]string{"option_name", "option_value", "autoload"}).
					AddRow(models.OptionStaticURL, "http://example.org/sub/", "yes"))

			opt, err := s.Options().Get(ctx, models.OptionStaticURL)
			Expect(err).NotTo(HaveOccurred())
			Expect(opt.Value).To(Equal("http://example.org/sub/"))
			Expect(opt.Autoload).To(Equal("yes"))
		})

		It("should return ErrOptionNotFound for a missing row", func() {
			mock.ExpectQuery(getOptionSQL).
				WithArgs("StaticPress::missing").
				WillReturnRows(sqlmock.NewRows([]string{"option_name", "option_value", "autoload"}))

			_, err := s.Options().Get(ctx, "StaticPress::missing")
			Expect(errors.Is(err, store.ErrOptionNotFound)).To(BeTrue())
		})
	})

	Context("ListNamespace", func() {
		It("should return every row under the prefix, ordered by name", func() {
			mock.ExpectQuery(listNamespaceSQL).
				WithArgs(models.StaticPressNamespace + "%").
				WillReturnRows(sqlmock.NewRows([]string{"option_name", "option_value", "autoload"}).
					AddRow(models.OptionStaticDir, "/var/www/html/wp-content/staticpress/", "yes").
					AddRow(models.OptionStaticURL, "http://example.org/sub/", "yes").
					AddRow(models.OptionTimeout, "20", "yes"))

			options, err := s.Options().ListNamespace(ctx, models.StaticPressNamespace)
			Expect(err).NotTo(HaveOccurred())
			Expect(options).To(HaveLen(3))
			Expect(options[0].Name).To(Equal(models.OptionStaticDir))
			Expect(options[2].Value).To(Equal("20"))
		})

		It("should return no rows for an unused prefix", func() {
			mock.ExpectQuery(listNamespaceSQL).
				WithArgs("Unused::%").
				WillReturnRows(sqlmock.NewRows([]string{"option_name", "option_value", "autoload"}))

			options, err := s.Options().ListNamespace(ctx, "Unused::")
			Expect(err).NotTo(HaveOccurred())
			Expect(options).To(BeEmpty())
		})
	})
})
