package buildinfo

import (
	"strings"
	"testing"
)

func TestShortPrefersVersion(t *testing.T) {
	oldV, oldC := Version, Commit
	defer func() { Version, Commit = oldV, oldC }()

	Version, Commit = "v1.2.0", "abc1234"
	if got := Short(); got != "v1.2.0" {
		t.Fatalf("Short() = %q", got)
	}
	Version = "dev"
	if got := Short(); got != "abc1234" {
		t.Fatalf("Short() = %q", got)
	}
}

func TestString(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	defer func() { Version, Commit, Date = oldV, oldC, oldD }()

	Version, Commit, Date = "v1.2.0", "abc1234", "2026-10-01"
	got := String()
	if !strings.HasPrefix(got, "sparkcalc v1.2.0") || !strings.Contains(got, "commit abc1234") || !strings.Contains(got, "2026-10-01") {
		t.Fatalf("String() = %q", got)
	}
}
