package models

// BootstrapState is derived fresh from the live installation's current
// screen; it is never persisted.
type BootstrapState string

const (
	// NeedsLanguageSelection: the locale chooser is shown (5.4.2 and later
	// show it before the install wizard).
	NeedsLanguageSelection BootstrapState = "needs-language-selection"
	// NeedsInstall: the install wizard ("Information needed") is shown.
	NeedsInstall BootstrapState = "needs-install"
	// NeedsLogin: the installation exists and only a login is required.
	NeedsLogin BootstrapState = "needs-login"
	// Ready: logged in with the plugin active.
	Ready BootstrapState = "ready"
)

// Screen is one observation of the live application, produced by probing and
// consumed by the pure state-detection function.
type Screen struct {
	LanguageChooserVisible bool
	InstallWizardVisible   bool
}
