package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

type configuration struct {
	WordPressImage   string
	MySQLImage       string
	Host             string
	WordPressVersion string
	PodmanSocket     string
	KeepContainers   bool
	Headless         bool
	StartStack       bool
}

var (
	cfg    configuration
	runner *PodmanRunner
)

func (c configuration) Validate() error {
	if c.StartStack && c.WordPressImage == "" {
		return errors.New("wordpress container image is empty")
	}
	if c.StartStack && c.MySQLImage == "" {
		return errors.New("mysql container image is empty")
	}
	if _, err := url.Parse(c.Host); err != nil {
		return fmt.Errorf("failed to parse host: %v", err)
	}
	return nil
}

func main() {
	flag.StringVar(&cfg.WordPressImage, "wordpress-image", "docker.io/library/wordpress:6.8.3-apache", "WordPress container image")
	flag.StringVar(&cfg.MySQLImage, "mysql-image", "docker.io/library/mysql:8.4", "MySQL container image")
	flag.StringVar(&cfg.Host, "host", "http://localhost/", "Base URL of the WordPress site")
	flag.StringVar(&cfg.WordPressVersion, "wordpress-version", "6.8.3", "WordPress release under test")
	flag.StringVar(&cfg.PodmanSocket, "podman-socket", "unix:///run/user/1000/podman/podman.sock", "Podman socket path")
	flag.BoolVar(&cfg.KeepContainers, "keep-containers", false, "Keep containers running after test completion (useful for debugging)")
	flag.BoolVar(&cfg.Headless, "headless", true, "Run the browser headless")
	flag.BoolVar(&cfg.StartStack, "start-stack", true, "Start MySQL and WordPress containers (disable when a stack is already running)")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("failed to validate configuration: %v", err)
	}

	RegisterFailHandler(Fail)
	if !RunSpecs(&testing.T{}, "WordPress E2E Suite") {
		os.Exit(1)
	}
}
