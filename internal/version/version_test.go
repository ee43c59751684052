package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version = "v1.2.3"
	Commit = "0123456789abcdef"

	got := String()
	if got != "cr-tools v1.2.3 (0123456789ab)" {
		t.Errorf("String() = %q", got)
	}
}

func TestGetCommit_Default(t *testing.T) {
	oldCommit := Commit
	t.Cleanup(func() { Commit = oldCommit })
	Commit = ""

	if got := GetCommit(); strings.TrimSpace(got) == "" {
		t.Error("GetCommit() returned empty string")
	}
}
