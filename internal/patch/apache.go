package patch

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

const (
	// authMarker proves the auth block was already injected into the vhost.
	authMarker = "# basic-auth: managed by wp-provision"

	// authzLoadDirective is appended to the top-level server config. Some
	// base images ship without mod_authz_core loaded and basic auth then
	// fails with an authorization-backend error.
	authzLoadDirective = "LoadModule authz_core_module /usr/lib/apache2/modules/mod_authz_core.so"
)

// vhostAnchor matches the commented-out module-include directive inside the
// virtual host, tolerant of leading whitespace.
var vhostAnchor = regexp.MustCompile(`^\s*#\s*Include\s+conf-available/serve-cgi-bin\.conf\s*$`)

// PatchVHost injects an HTTP basic-authentication block after the first
// anchor line of the virtual-host file. A marker line makes the procedure
// idempotent: if the marker is already present the file is left untouched.
func PatchVHost(path, realm, userFile string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	content := string(data)

	if strings.Contains(content, authMarker) {
		return nil
	}

	lines := strings.Split(content, "\n")
	anchorIdx := -1
	for i, line := range lines {
		if vhostAnchor.MatchString(line) {
			anchorIdx = i
			break
		}
	}
	if anchorIdx == -1 {
		return fmt.Errorf("anchor %q not found in %s", "#Include conf-available/serve-cgi-bin.conf", path)
	}

	block := []string{
		"\t" + authMarker,
		"\t<Location \"/\">",
		"\t\tAuthType Basic",
		fmt.Sprintf("\t\tAuthName %q", realm),
		"\t\tAuthUserFile " + userFile,
		"\t\tRequire valid-user",
		"\t</Location>",
	}

	patched := make([]string, 0, len(lines)+len(block))
	patched = append(patched, lines[:anchorIdx+1]...)
	patched = append(patched, block...)
	patched = append(patched, lines[anchorIdx+1:]...)

	return writeFileAtomic(path, []byte(strings.Join(patched, "\n")), 0644)
}

// PatchServerConf appends the authz module-load directive to the top-level
// server configuration. The directive itself serves as the marker.
func PatchServerConf(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	content := string(data)

	if strings.Contains(content, authzLoadDirective) {
		return nil
	}

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += authzLoadDirective + "\n"

	return writeFileAtomic(path, []byte(content), 0644)
}
