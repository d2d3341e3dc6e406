// Package bootstrap brings a fresh or pre-existing installation to a "logged
// in, plugin active" state. The state is derived by probing the live
// application's current screen; nothing is persisted between sessions.
package bootstrap

import (
	"context"

	"go.uber.org/zap"

	"github.com/yukihiko-shinoda/staticpress-e2e/internal/config"
	"github.com/yukihiko-shinoda/staticpress-e2e/internal/models"
	srvErrors "github.com/yukihiko-shinoda/staticpress-e2e/pkg/errors"
)

// InstallParams fills the install wizard.
type InstallParams struct {
	SiteTitle string
	Username  string
	Password  string
	Email     string
	Selectors Selectors
}

// ScreenDriver is the boundary to the browser layer. Observe is side-effect
// free; every other call performs an action and waits for the page to settle.
type ScreenDriver interface {
	// Open navigates to the base URL through the basic-auth layer.
	Open(ctx context.Context) error
	// Observe reports what the current screen shows without changing it.
	Observe(ctx context.Context, sel Selectors) (models.Screen, error)
	ChooseLanguage(ctx context.Context, locale string) error
	Install(ctx context.Context, params InstallParams) error
	// FollowLoginLink clicks the "Log In" link the wizard shows after a
	// successful install.
	FollowLoginLink(ctx context.Context) error
	Login(ctx context.Context, username, password string) error
	// ActivatePlugin activates the plugin matched by exact title. A plugin
	// that is already active is left alone.
	ActivatePlugin(ctx context.Context, title string) error
}

// DetectState maps one screen observation to a bootstrap state. Pure, so it
// can be called repeatedly against mock observations.
func DetectState(s models.Screen) models.BootstrapState {
	switch {
	case s.LanguageChooserVisible:
		return models.NeedsLanguageSelection
	case s.InstallWizardVisible:
		return models.NeedsInstall
	default:
		return models.NeedsLogin
	}
}

// Machine drives the installation to Ready. One machine serves one test
// session; EnsureReady is idempotent at the session level.
type Machine struct {
	cfg    config.WordPress
	driver ScreenDriver
	logger *zap.SugaredLogger
	ready  bool
}

func NewMachine(cfg config.WordPress, driver ScreenDriver) *Machine {
	return &Machine{
		cfg:    cfg,
		driver: driver,
		logger: zap.S().Named("bootstrap"),
	}
}

// EnsureReady probes the current screen and walks whatever transitions remain:
// language selection, install or login, then plugin activation for a freshly
// installed instance. Any step failure aborts the whole session; a failed
// bootstrap is not retried.
func (m *Machine) EnsureReady(ctx context.Context) error {
	if m.ready {
		return nil
	}

	sel, err := SelectorsFor(m.cfg.Version)
	if err != nil {
		return srvErrors.NewBootstrapError("selecting version selectors", "", err)
	}

	if err := m.driver.Open(ctx); err != nil {
		return srvErrors.NewBootstrapError("opening site", m.cfg.BaseURL, err)
	}

	screen, err := m.driver.Observe(ctx, sel)
	if err != nil {
		return srvErrors.NewBootstrapError("probing screen", "", err)
	}
	state := DetectState(screen)
	m.logger.Infow("bootstrap state detected", "state", state)

	if state == models.NeedsLanguageSelection {
		if err := m.driver.ChooseLanguage(ctx, m.cfg.Locale); err != nil {
			return srvErrors.NewBootstrapError("choosing language", m.cfg.Locale, err)
		}
		screen, err = m.driver.Observe(ctx, sel)
		if err != nil {
			return srvErrors.NewBootstrapError("probing screen after language", "", err)
		}
		state = DetectState(screen)
		m.logger.Infow("bootstrap state after language selection", "state", state)
	}

	freshInstall := state == models.NeedsInstall
	if freshInstall {
		params := InstallParams{
			SiteTitle: m.cfg.SiteTitle,
			Username:  m.cfg.AdminUser,
			Password:  m.cfg.AdminPassword,
			Email:     m.cfg.AdminEmail,
			Selectors: sel,
		}
		if err := m.driver.Install(ctx, params); err != nil {
			return srvErrors.NewBootstrapError("installing", sel.PasswordField, err)
		}
		if err := m.driver.FollowLoginLink(ctx); err != nil {
			return srvErrors.NewBootstrapError("following login link", "", err)
		}
	}

	if err := m.driver.Login(ctx, m.cfg.AdminUser, m.cfg.AdminPassword); err != nil {
		return srvErrors.NewBootstrapError("logging in", "", err)
	}

	// A pre-existing instance already has the plugin active; only a fresh
	// install needs activation.
	if freshInstall {
		if err := m.driver.ActivatePlugin(ctx, m.cfg.PluginName); err != nil {
			return srvErrors.NewBootstrapError("activating plugin", m.cfg.PluginName, err)
		}
	}

	m.ready = true
	m.logger.Infow("bootstrap complete", "fresh_install", freshInstall)
	return nil
}
