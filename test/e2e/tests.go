package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yukihiko-shinoda/staticpress-e2e/internal/bootstrap"
	"github.com/yukihiko-shinoda/staticpress-e2e/internal/config"
	"github.com/yukihiko-shinoda/staticpress-e2e/internal/models"
	"github.com/yukihiko-shinoda/staticpress-e2e/internal/store"
)

// testTimeout bounds each test case; a hung browser step aborts the case.
const testTimeout = 5 * time.Minute

var _ = Describe("StaticPress2019 e2e", Ordered, func() {
	var (
		stack  *Stack
		appCfg *config.Configuration
		db     *sql.DB
		s      *store.Store
		driver *PlaywrightDriver
	)

	BeforeAll(func() {
		appCfg = config.NewConfigurationWithDefaults()
		appCfg.BasicAuth.Username = BasicAuthUsername
		appCfg.BasicAuth.Password = BasicAuthPassword
		appCfg.WordPress.BaseURL = cfg.Host
		appCfg.WordPress.Version = cfg.WordPressVersion

		if cfg.StartStack {
			var err error
			stack, err = NewStack(cfg)
			Expect(err).ToNot(HaveOccurred(), "failed to create stack")

			GinkgoWriter.Println("Starting mysql...")
			Expect(stack.StartMySQL()).To(Succeed(), "failed to start mysql")

			GinkgoWriter.Println("Starting wordpress...")
			Expect(stack.StartWordPress()).To(Succeed(), "failed to start wordpress")
		}

		By("waiting for the site to answer through basic auth")
		Eventually(func() error {
			req, err := http.NewRequest(http.MethodGet, cfg.Host, nil)
			if err != nil {
				return err
			}
			req.SetBasicAuth(BasicAuthUsername, BasicAuthPassword)
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			return nil
		}, 3*time.Minute, 5*time.Second).Should(Succeed())

		By("waiting for the database to accept connections")
		Eventually(func() error {
			var err error
			db, err = store.NewDB(appCfg.Database)
			return err
		}, 2*time.Minute, 5*time.Second).Should(Succeed())
		s = store.NewStore(db)

		By("bootstrapping the installation")
		var err error
		driver, err = NewPlaywrightDriver(appCfg.WordPress, appCfg.BasicAuth, cfg.Headless)
		Expect(err).ToNot(HaveOccurred(), "failed to start browser")

		machine := bootstrap.NewMachine(appCfg.WordPress, driver)
		Expect(machine.EnsureReady(context.Background())).To(Succeed(), "bootstrap failed")
	})

	AfterAll(func() {
		if driver != nil {
			_ = driver.Close()
		}
		if s != nil {
			_ = s.Close()
		}
		if stack == nil {
			return
		}
		if cfg.KeepContainers {
			GinkgoWriter.Println("Keeping containers running (--keep-containers flag set)")
			return
		}
		_ = stack.StopWordPress()
		_ = stack.StopMySQL()
	})

	// The reset protocol runs synchronously before every test body.
	BeforeEach(func(ctx SpecContext) {
		Expect(s.Fixtures().Reset(ctx, models.StaticPressFixtures())).To(Succeed())
		Expect(s.Fixtures().ActivatePlugin(ctx)).To(Succeed())
	}, NodeTimeout(time.Minute))

	// Given a reset store
	// When we list the plugin namespace
	// Then exactly the fixture keys exist, with the fixture values
	It("should leave exactly the fixture keys in the namespace", func(ctx SpecContext) {
		options, err := s.Options().ListNamespace(ctx, models.StaticPressNamespace)
		Expect(err).ToNot(HaveOccurred())
		Expect(options).To(HaveLen(3))

		byName := map[string]models.Option{}
		for _, opt := range options {
			byName[opt.Name] = opt
		}
		Expect(byName[models.OptionStaticURL].Value).To(Equal("http://example.org/sub/"))
		Expect(byName[models.OptionStaticDir].Value).To(Equal("/var/www/html/wp-content/staticpress/"))
		Expect(byName[models.OptionTimeout].Value).To(Equal("20"))
		for _, opt := range options {
			Expect(opt.Autoload).To(Equal("yes"))
		}
	}, SpecTimeout(testTimeout))

	// Given a store that was just reset
	// When the protocol runs again
	// Then the namespace reads back identically (upsert idempotence)
	It("should be idempotent across back-to-back resets", func(ctx SpecContext) {
		first, err := s.Options().ListNamespace(ctx, models.StaticPressNamespace)
		Expect(err).ToNot(HaveOccurred())

		Expect(s.Fixtures().Reset(ctx, models.StaticPressFixtures())).To(Succeed())

		second, err := s.Options().ListNamespace(ctx, models.StaticPressNamespace)
		Expect(err).ToNot(HaveOccurred())
		Expect(second).To(Equal(first))
	}, SpecTimeout(testTimeout))

	// Given a stale row left by a previous test
	// When the reset protocol runs
	// Then exactly one row exists for the key, holding the fixture value
	It("should replace stale values from a previous test", func(ctx SpecContext) {
		_, err := db.ExecContext(ctx,
			"INSERT INTO wp_options (option_name, option_value, autoload) VALUES (?, ?, ?) "+
				"ON DUPLICATE KEY UPDATE option_value = VALUES(option_value)",
			models.OptionStaticURL, "old", "yes")
		Expect(err).ToNot(HaveOccurred())

		Expect(s.Fixtures().Reset(ctx, models.StaticPressFixtures())).To(Succeed())

		opt, err := s.Options().Get(ctx, models.OptionStaticURL)
		Expect(err).ToNot(HaveOccurred())
		Expect(opt.Value).To(Equal("http://example.org/sub/"))
	}, SpecTimeout(testTimeout))

	It("should keep the plugin active for the test body", func(ctx SpecContext) {
		opt, err := s.Options().Get(ctx, models.ActivePluginsOption)
		Expect(err).ToNot(HaveOccurred())
		Expect(opt.Value).To(Equal(models.StaticPressActivePlugins))

		dbVersion, err := s.Options().Get(ctx, models.DBVersionOption)
		Expect(err).ToNot(HaveOccurred())
		Expect(dbVersion.Value).To(Equal(models.PinnedDBVersion))
	}, SpecTimeout(testTimeout))
})
