package bootstrap

import "github.com/yukihiko-shinoda/staticpress-e2e/pkg/version"

// modernUIVersion is the first release line with the current install wizard
// markup. 4.3 still uses a plain-text password field and an h1 heading.
const modernUIVersion = "4.4"

// Selectors are the version-dependent pieces of the install wizard markup.
type Selectors struct {
	// PasswordField is the initial-password input: #pass1 on modern
	// releases, #pass1-text at least on 4.3.
	PasswordField string
	// WelcomeHeading is the tag carrying the "Information needed" heading:
	// h2 on modern releases, h1 on legacy ones.
	WelcomeHeading string
}

// SelectorsFor picks the selectors for the configured installation version.
func SelectorsFor(wpVersion string) (Selectors, error) {
	modern, err := version.AtLeast(wpVersion, modernUIVersion)
	if err != nil {
		return Selectors{}, err
	}
	if modern {
		return Selectors{PasswordField: "#pass1", WelcomeHeading: "h2"}, nil
	}
	return Selectors{PasswordField: "#pass1-text", WelcomeHeading: "h1"}, nil
}
