package version

import (
	"regexp"
	"testing"
)

func TestVersionLooksLikeSemver(t *testing.T) {
	re := regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.]+)?$`)
	if !re.MatchString(Version) {
		t.Errorf("Version = %q, want MAJOR.MINOR.PATCH", Version)
	}
}
