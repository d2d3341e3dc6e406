// Package config holds the explicit configuration passed to the provisioning
// entrypoint and the e2e harness. Values are populated once at startup from
// defaults, flags and environment; nothing reads the environment ad hoc
// mid-procedure.
package config

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// EnvPrefix is the prefix for all environment variables bound to flags,
// e.g. WPE2E_BASIC_AUTH_USERNAME for --basic-auth-username.
const EnvPrefix = "WPE2E"

type Configuration struct {
	BasicAuth BasicAuth
	Patch     Patch
	Database  Database
	WordPress WordPress
}

// BasicAuth is the HTTP-layer credential pair injected into the web server.
// It is distinct from the WordPress admin credentials in WordPress.
type BasicAuth struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
	Realm    string `default:"Restricted Content"`
}

// Patch locates the artifacts rewritten before the application process starts.
type Patch struct {
	VHostPath      string `default:"/etc/apache2/sites-available/000-default.conf" validate:"required"`
	ApacheConfPath string `default:"/etc/apache2/apache2.conf" validate:"required"`
	HtpasswdPath   string `default:"/etc/apache2/.htpasswd" validate:"required"`
	WPConfigPath   string `default:"/usr/src/wordpress/wp-config-docker.php" validate:"required"`

	// ExtraConfig is injected verbatim into the wp-config template. Empty
	// means no injection.
	ExtraConfig string

	// EnforceVersionGate skips the extra-config injection on installations
	// older than 5.0.0. Off by default: the gate was disabled upstream and
	// the injection runs unconditionally.
	EnforceVersionGate bool `default:"false"`
}

// Database describes the wp_options store used by the fixture reset protocol.
type Database struct {
	Host     string `default:"localhost" validate:"required"`
	Port     int    `default:"3306" validate:"gt=0,lte=65535"`
	Username string `default:"exampleuser" validate:"required"`
	Password string `default:"examplepass" validate:"required"`
	Name     string `default:"exampledb" validate:"required"`
}

// DSN returns the go-sql-driver connection string. parseTime is required for
// scanning DATETIME columns.
func (d Database) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", d.Username, d.Password, d.Host, d.Port, d.Name)
}

// WordPress holds the fixed constants the bootstrap drives the installation
// with, plus the release version used for version-dependent selectors.
type WordPress struct {
	BaseURL       string `default:"http://localhost/" validate:"required,url"`
	Version       string `default:"6.8.3" validate:"required"`
	SiteTitle     string `default:"test_title"`
	AdminUser     string `default:"test_user"`
	AdminPassword string `default:"-JfG+L.3-s!A6YmhsKGkGERc+hq&XswU"`
	AdminEmail    string `default:"test@gmail.com"`
	Locale        string `default:"English (United States)"`
	PluginName    string `default:"StaticPress2019"`
}

// NewConfigurationWithDefaults returns a Configuration with all default
// values applied. Fields without defaults (the basic-auth credentials) stay
// empty until flags or environment fill them.
func NewConfigurationWithDefaults() *Configuration {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks the configuration. A missing basic-auth credential is the
// caller's FatalStartupError.
func (c *Configuration) Validate() error {
	return validator.New().Struct(c)
}
