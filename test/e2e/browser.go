package main

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/yukihiko-shinoda/staticpress-e2e/internal/bootstrap"
	"github.com/yukihiko-shinoda/staticpress-e2e/internal/config"
	"github.com/yukihiko-shinoda/staticpress-e2e/internal/models"
)

// PlaywrightDriver implements bootstrap.ScreenDriver against a real browser.
// Waits are bounded by Playwright's default timeouts, not busy-polling.
type PlaywrightDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	bctx    playwright.BrowserContext
	page    playwright.Page
	wp      config.WordPress
}

func NewPlaywrightDriver(wp config.WordPress, auth config.BasicAuth, headless bool) (*PlaywrightDriver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args:     []string{"--no-sandbox", "--disable-setuid-sandbox"},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		BaseURL: playwright.String(wp.BaseURL),
		HttpCredentials: &playwright.HttpCredentials{
			Username: auth.Username,
			Password: auth.Password,
		},
		Viewport: &playwright.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return &PlaywrightDriver{pw: pw, browser: browser, bctx: bctx, page: page, wp: wp}, nil
}

func (d *PlaywrightDriver) Close() error {
	_ = d.bctx.Close()
	_ = d.browser.Close()
	return d.pw.Stop()
}

func (d *PlaywrightDriver) Open(_ context.Context) error {
	_, err := d.page.Goto(d.wp.BaseURL)
	return err
}

func (d *PlaywrightDriver) Observe(_ context.Context, sel bootstrap.Selectors) (models.Screen, error) {
	var screen models.Screen

	languageLabels, err := d.page.Locator(`xpath=//label[text()="Select a default language"]`).Count()
	if err != nil {
		return screen, err
	}
	screen.LanguageChooserVisible = languageLabels > 0

	heading := fmt.Sprintf(`xpath=//%s[text()="Information needed"]`, sel.WelcomeHeading)
	headings, err := d.page.Locator(heading).Count()
	if err != nil {
		return screen, err
	}
	screen.InstallWizardVisible = headings > 0

	return screen, nil
}

func (d *PlaywrightDriver) ChooseLanguage(_ context.Context, locale string) error {
	if _, err := d.page.Locator(`select#language`).SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{locale},
	}); err != nil {
		return err
	}
	if err := d.page.Locator(`input[value="Continue"]`).Click(); err != nil {
		return err
	}
	return d.waitSettled()
}

func (d *PlaywrightDriver) Install(_ context.Context, params bootstrap.InstallParams) error {
	if err := d.page.Locator(`input#weblog_title`).Fill(params.SiteTitle); err != nil {
		return err
	}
	if err := d.page.Locator(`input#user_login`).Fill(params.Username); err != nil {
		return err
	}
	// The wizard pre-fills a generated password; Fill replaces it.
	if err := d.page.Locator(params.Selectors.PasswordField).Fill(params.Password); err != nil {
		return err
	}
	if err := d.page.Locator(`input#admin_email`).Fill(params.Email); err != nil {
		return err
	}
	if err := d.page.Locator(`input[value="Install WordPress"]`).Click(); err != nil {
		return err
	}
	return d.waitSettled()
}

func (d *PlaywrightDriver) FollowLoginLink(_ context.Context) error {
	if err := d.page.Locator(`xpath=//a[contains(text(), "Log In")]`).First().Click(); err != nil {
		return err
	}
	return d.waitSettled()
}

func (d *PlaywrightDriver) Login(_ context.Context, username, password string) error {
	if _, err := d.page.Goto("wp-login.php"); err != nil {
		return err
	}
	if err := d.page.Locator(`input#user_login`).Fill(username); err != nil {
		return err
	}
	if err := d.page.Locator(`input#user_pass`).Fill(password); err != nil {
		return err
	}
	if err := d.page.Locator(`input[name="wp-submit"]`).Click(); err != nil {
		return err
	}
	return d.waitSettled()
}

func (d *PlaywrightDriver) ActivatePlugin(_ context.Context, title string) error {
	if _, err := d.page.Goto("wp-admin/plugins.php"); err != nil {
		return err
	}
	escaped := bootstrap.EscapeXPathString(title)
	link := d.page.Locator(fmt.Sprintf(
		`xpath=//strong[text()=%s]/following-sibling::div//a[text()="Activate"]`, escaped,
	)).First()

	// No Activate link means the plugin is already active.
	count, err := link.Count()
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	if err := link.Click(); err != nil {
		return err
	}
	return d.waitSettled()
}

func (d *PlaywrightDriver) waitSettled() error {
	return d.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
}
