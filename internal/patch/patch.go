// Package patch rewrites the web-server and application configuration
// artifacts before the application process is allowed to start. Every
// procedure is marker-guarded and idempotent: running it against an already
// patched artifact leaves the file byte-identical.
package patch

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/yukihiko-shinoda/staticpress-e2e/internal/config"
	srvErrors "github.com/yukihiko-shinoda/staticpress-e2e/pkg/errors"
	"github.com/yukihiko-shinoda/staticpress-e2e/pkg/version"
)

// wpConfigMinVersion is the release that introduced the extra-configuration
// mechanism. Only checked when the version gate is enforced.
const wpConfigMinVersion = "5.0.0"

// Patcher applies all startup patches from an explicit configuration.
type Patcher struct {
	cfg    *config.Configuration
	logger *zap.SugaredLogger
}

func NewPatcher(cfg *config.Configuration) *Patcher {
	return &Patcher{
		cfg:    cfg,
		logger: zap.S().Named("patch"),
	}
}

// Run applies every patch in order. Any failure is fatal for startup: the
// caller must exit non-zero without handing off to the application.
func (p *Patcher) Run() error {
	if p.cfg.BasicAuth.Username == "" || p.cfg.BasicAuth.Password == "" {
		return srvErrors.NewFatalStartupError("basic-auth credentials not set", "", nil)
	}

	if err := WriteHtpasswd(p.cfg.Patch.HtpasswdPath, p.cfg.BasicAuth.Username, p.cfg.BasicAuth.Password); err != nil {
		return srvErrors.NewFatalStartupError("writing credentials file", p.cfg.Patch.HtpasswdPath, err)
	}
	p.logger.Infow("credentials file written", "path", p.cfg.Patch.HtpasswdPath)

	if err := PatchVHost(p.cfg.Patch.VHostPath, p.cfg.BasicAuth.Realm, p.cfg.Patch.HtpasswdPath); err != nil {
		return srvErrors.NewFatalStartupError("patching virtual host", p.cfg.Patch.VHostPath, err)
	}
	if err := PatchServerConf(p.cfg.Patch.ApacheConfPath); err != nil {
		return srvErrors.NewFatalStartupError("patching server config", p.cfg.Patch.ApacheConfPath, err)
	}
	p.logger.Infow("basic authentication injected", "vhost", p.cfg.Patch.VHostPath)

	if p.cfg.Patch.EnforceVersionGate {
		ok, err := version.AtLeast(p.cfg.WordPress.Version, wpConfigMinVersion)
		if err != nil {
			return srvErrors.NewFatalStartupError("checking version gate", "", err)
		}
		if !ok {
			p.logger.Infow("extra configuration skipped by version gate",
				"version", p.cfg.WordPress.Version, "minimum", wpConfigMinVersion)
			return nil
		}
	}

	changed, err := PatchWPConfig(p.cfg.Patch.WPConfigPath, p.cfg.Patch.ExtraConfig)
	if err != nil {
		return srvErrors.NewFatalStartupError("patching wp-config template", p.cfg.Patch.WPConfigPath, err)
	}
	if changed {
		p.logger.Infow("extra configuration injected", "path", p.cfg.Patch.WPConfigPath)
	}
	return nil
}

// writeFileAtomic stages data to a temporary file in the target directory and
// renames it over the destination, so a crash mid-write cannot leave a
// half-written artifact.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
