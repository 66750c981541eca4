package version

import (
	"strings"
	"testing"
)

func TestVersionStrings(t *testing.T) {
	prevVersion, prevCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = prevVersion, prevCommit })

	Version, Commit = "1.2.3", "abc123"
	if got := Short(); got != "catci-server/1.2.3" {
		t.Fatalf("Short() = %q", got)
	}
	if got := Full(); !strings.Contains(got, "1.2.3") || !strings.Contains(got, "abc123") {
		t.Fatalf("Full() = %q", got)
	}
}
