// Package main is the e2e harness. It provisions a MySQL + WordPress stack
// with podman, bootstraps the installation through a real browser, resets the
// StaticPress fixture set before each test case and verifies the reset
// protocol against the live database.
//
// Run it as a standalone binary:
//
//	go run ./test/e2e \
//	    --wordpress-image docker.io/library/wordpress:6.8.3-apache \
//	    --mysql-image docker.io/library/mysql:8.4
package main
