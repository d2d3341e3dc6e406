package patch

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

const (
	// WPConfigMarker proves the extra configuration was already injected.
	WPConfigMarker = "/* extra-config: managed by wp-provision */"

	wpConfigAnchor = "/* That's all, stop editing!"
)

// wpDebugFalse matches the stock debug-constant definition. The line is
// dropped so a payload that redefines WP_DEBUG does not trip a duplicate
// definition fault.
var wpDebugFalse = regexp.MustCompile(`^\s*define\(\s*'WP_DEBUG'\s*,\s*false\s*\)\s*;\s*$`)

// PatchWPConfig injects the extra-configuration payload into the wp-config
// template, immediately before the "stop editing" anchor. It reports whether
// the file was modified. An empty payload or an already present marker is a
// no-op that leaves the file bytes untouched.
func PatchWPConfig(path, payload string) (bool, error) {
	if payload == "" {
		return false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	content := string(data)

	if strings.Contains(content, WPConfigMarker) {
		return false, nil
	}

	lines := strings.Split(content, "\n")
	anchorIdx := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), wpConfigAnchor) {
			anchorIdx = i
			break
		}
	}
	if anchorIdx == -1 {
		return false, fmt.Errorf("anchor %q not found in %s", wpConfigAnchor, path)
	}

	patched := make([]string, 0, len(lines)+4)
	for _, line := range lines[:anchorIdx] {
		if wpDebugFalse.MatchString(line) {
			continue
		}
		patched = append(patched, line)
	}
	patched = append(patched, WPConfigMarker)
	patched = append(patched, strings.TrimRight(payload, "\n"))
	patched = append(patched, "")
	patched = append(patched, lines[anchorIdx:]...)

	if err := writeFileAtomic(path, []byte(strings.Join(patched, "\n")), 0644); err != nil {
		return false, err
	}
	return true, nil
}
