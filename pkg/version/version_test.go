package version

import (
	"regexp"
	"testing"
)

func TestVersionFormat(t *testing.T) {
	semver := regexp.MustCompile(`^v\d+\.\d+\.\d+(-[0-9A-Za-z.]+)?$`)
	if !semver.MatchString(Version) {
		t.Errorf("Version %q is not a v-prefixed semantic version", Version)
	}
}
