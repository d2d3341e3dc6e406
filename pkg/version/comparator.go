// Package version compares dotted version strings the way WordPress releases
// are versioned: component-wise, most significant first, with missing
// components treated as zero ("4.6" equals "4.6.0").
package version

import (
	"strconv"
	"strings"

	srvErrors "github.com/yukihiko-shinoda/staticpress-e2e/pkg/errors"
)

// Relation is the outcome of comparing two version strings.
type Relation int

const (
	Less Relation = iota - 1
	Equal
	Greater
)

func (r Relation) String() string {
	switch r {
	case Less:
		return "less"
	case Greater:
		return "greater"
	default:
		return "equal"
	}
}

// Compare compares a against b. Components are parsed as base-10 integers, so
// "10" sorts after "9" and leading zeros are ignored. A component that does
// not parse as an integer is coerced to 0 rather than rejected; this relaxed
// parsing mirrors the integer coercion the release scripts have always relied
// on. Only an empty input is an error.
func Compare(a, b string) (Relation, error) {
	if a == "" {
		return Equal, srvErrors.NewInvalidVersionFormatError(a)
	}
	if b == "" {
		return Equal, srvErrors.NewInvalidVersionFormatError(b)
	}

	aParts := strings.Split(a, ".")
	bParts := strings.Split(b, ".")

	n := len(aParts)
	if len(bParts) > n {
		n = len(bParts)
	}

	for i := 0; i < n; i++ {
		av := component(aParts, i)
		bv := component(bParts, i)
		if av > bv {
			return Greater, nil
		}
		if av < bv {
			return Less, nil
		}
	}
	return Equal, nil
}

// AtLeast reports whether v is min or newer.
func AtLeast(v, min string) (bool, error) {
	rel, err := Compare(v, min)
	if err != nil {
		return false, err
	}
	return rel != Less, nil
}

func component(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
	if err != nil {
		return 0
	}
	return v
}
