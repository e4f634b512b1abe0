package utils

import "testing"

func TestGetApplicationVersionPrefersLinkedVersion(t *testing.T) {
	original := Version
	t.Cleanup(func() { Version = original })

	Version = "v9.9.9"
	if got := GetApplicationVersion(); got != "v9.9.9" {
		t.Fatalf("expected linked version, got %q", got)
	}
}

func TestGetApplicationVersionFallsBack(t *testing.T) {
	original := Version
	t.Cleanup(func() { Version = original })

	Version = ""
	if got := GetApplicationVersion(); got == "" {
		t.Fatalf("expected a non-empty version")
	}
}
