package cmd

import (
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/yukihiko-shinoda/staticpress-e2e/internal/config"
	"github.com/yukihiko-shinoda/staticpress-e2e/internal/patch"
	srvErrors "github.com/yukihiko-shinoda/staticpress-e2e/pkg/errors"
)

// defaultHandoff is the wrapped image's original startup process, used when
// no command follows the flags.
var defaultHandoff = []string{"docker-entrypoint.sh", "apache2-foreground"}

// NewProvisionCommand patches the configuration artifacts and execs into the
// wrapped entrypoint. Patch failure exits non-zero before the application is
// allowed to start.
func NewProvisionCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provision [flags] [-- command...]",
		Short: "Patch Apache and wp-config, then exec the wrapped entrypoint",
		PreRun: func(cmd *cobra.Command, args []string) {
			viper.AutomaticEnv()
			viper.SetEnvPrefix(config.EnvPrefix)
			viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			cobraflags.PresetRequiredFlags(config.EnvPrefix, make(map[*pflag.Flag]bool), cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return srvErrors.NewFatalStartupError("invalid configuration", "", err)
			}
			if err := patch.NewPatcher(cfg).Run(); err != nil {
				return err
			}
			if len(args) == 0 {
				args = defaultHandoff
			}
			return handoff(args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.BasicAuth.Username, "basic-auth-username", cfg.BasicAuth.Username, "HTTP basic-auth username (required)")
	flags.StringVar(&cfg.BasicAuth.Password, "basic-auth-password", cfg.BasicAuth.Password, "HTTP basic-auth password (required)")
	flags.StringVar(&cfg.BasicAuth.Realm, "basic-auth-realm", cfg.BasicAuth.Realm, "Realm announced by the auth challenge")

	flags.StringVar(&cfg.Patch.VHostPath, "patch-vhost-path", cfg.Patch.VHostPath, "Virtual-host file to inject the auth block into")
	flags.StringVar(&cfg.Patch.ApacheConfPath, "patch-apache-conf-path", cfg.Patch.ApacheConfPath, "Top-level server config receiving the module-load directive")
	flags.StringVar(&cfg.Patch.HtpasswdPath, "patch-htpasswd-path", cfg.Patch.HtpasswdPath, "Credentials file to create")
	flags.StringVar(&cfg.Patch.WPConfigPath, "patch-wp-config-path", cfg.Patch.WPConfigPath, "wp-config template to patch")
	flags.StringVar(&cfg.Patch.ExtraConfig, "patch-extra-config", cfg.Patch.ExtraConfig, "Extra configuration injected verbatim into the wp-config template")
	flags.BoolVar(&cfg.Patch.EnforceVersionGate, "patch-enforce-version-gate", cfg.Patch.EnforceVersionGate, "Skip extra configuration on installations older than 5.0.0")

	flags.StringVar(&cfg.WordPress.Version, "wordpress-version", cfg.WordPress.Version, "Installed WordPress release")

	return cmd
}

// handoff execs into the wrapped command, replacing this process so signal
// handling stays with the application.
func handoff(argv []string) error {
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return srvErrors.NewFatalStartupError("resolving wrapped command", argv[0], err)
	}
	return syscall.Exec(path, argv, os.Environ())
}
