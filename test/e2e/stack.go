package main

import (
	"github.com/google/uuid"
)

const (
	dbContainerName = "test-wp-db"
	wpContainerName = "test-wp"

	// Basic auth at the web-server layer, distinct from the admin login.
	BasicAuthUsername = "authuser"
	BasicAuthPassword = "authpassword"

	// Database configuration, matching the wp_options store defaults.
	dbHost         = "localhost"
	dbPort         = "3306"
	dbName         = "exampledb"
	dbUser         = "exampleuser"
	dbPassword     = "examplepass"
	dbRootPassword = "rootpass"
)

// Stack runs the MySQL and WordPress containers for one e2e session. The
// WordPress image is expected to carry wp-provision as its entrypoint, so the
// basic-auth injection and wp-config patching happen at container start.
type Stack struct {
	Runner *PodmanRunner
	cfg    configuration

	// Unique per session so an aborted previous run cannot collide.
	suffix string
}

func NewStack(cfg configuration) (*Stack, error) {
	runner, err := NewPodmanRunner(cfg.PodmanSocket)
	if err != nil {
		return nil, err
	}
	return &Stack{Runner: runner, cfg: cfg, suffix: uuid.NewString()[:8]}, nil
}

func (s *Stack) dbContainer() string {
	return dbContainerName + "-" + s.suffix
}

func (s *Stack) wpContainer() string {
	return wpContainerName + "-" + s.suffix
}

func (s *Stack) StartMySQL() error {
	_, err := s.Runner.StartContainer(
		NewContainerConfig(s.dbContainer(), s.cfg.MySQLImage).
			WithPort(3306, 3306).
			WithEnvVar("MYSQL_DATABASE", dbName).
			WithEnvVar("MYSQL_USER", dbUser).
			WithEnvVar("MYSQL_PASSWORD", dbPassword).
			WithEnvVar("MYSQL_ROOT_PASSWORD", dbRootPassword),
	)
	return err
}

func (s *Stack) StartWordPress() error {
	_, err := s.Runner.StartContainer(
		NewContainerConfig(s.wpContainer(), s.cfg.WordPressImage).
			WithPort(80, 80).
			WithEnvVar("WORDPRESS_DB_HOST", dbHost+":"+dbPort).
			WithEnvVar("WORDPRESS_DB_NAME", dbName).
			WithEnvVar("WORDPRESS_DB_USER", dbUser).
			WithEnvVar("WORDPRESS_DB_PASSWORD", dbPassword).
			WithEnvVar("WPE2E_BASIC_AUTH_USERNAME", BasicAuthUsername).
			WithEnvVar("WPE2E_BASIC_AUTH_PASSWORD", BasicAuthPassword).
			WithEnvVar("WPE2E_PATCH_EXTRA_CONFIG", "define('WP_DEBUG', true);").
			WithEnvVar("WPE2E_WORDPRESS_VERSION", s.cfg.WordPressVersion),
	)
	return err
}

func (s *Stack) StopMySQL() error {
	if err := s.Runner.StopContainer(s.dbContainer()); err != nil {
		return err
	}
	return s.Runner.RemoveContainer(s.dbContainer())
}

func (s *Stack) StopWordPress() error {
	if err := s.Runner.StopContainer(s.wpContainer()); err != nil {
		return err
	}
	return s.Runner.RemoveContainer(s.wpContainer())
}
