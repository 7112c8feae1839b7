package bootstrap

import (
	"fmt"
	"regexp"

	"golang.org/x/mod/semver"
)

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseVersion extracts the first dotted version from interpreter output
// such as "Python 3.12.1".
func ParseVersion(output string) (string, error) {
	v := versionPattern.FindString(output)
	if v == "" {
		return "", fmt.Errorf("no version in %q", output)
	}
	return v, nil
}

func canonicalVersion(v string) (string, error) {
	c := "v" + v
	if !semver.IsValid(c) {
		return "", fmt.Errorf("invalid version %q", v)
	}
	return c, nil
}

// AtLeast reports whether version found is >= min.
func AtLeast(found, min string) (bool, error) {
	f, err := canonicalVersion(found)
	if err != nil {
		return false, err
	}
	m, err := canonicalVersion(min)
	if err != nil {
		return false, err
	}
	return semver.Compare(f, m) >= 0, nil
}
