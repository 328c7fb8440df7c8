package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, name, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckValidFile(t *testing.T) {
	path := writeSource(t, "ok.cv", `
pub fn add(a: Int, b: Int) -> Int {
	a + b
}
`)
	if code := Run([]string{"corvid", "check", path}); code != 0 {
		t.Errorf("check exited %d, want 0", code)
	}
}

func TestCheckReportsTypeErrors(t *testing.T) {
	path := writeSource(t, "bad.cv", `
pub fn f() -> Int {
	missing
}
`)
	if code := Run([]string{"corvid", "check", path}); code != 1 {
		t.Errorf("check exited %d, want 1", code)
	}
}

func TestCheckMissingFile(t *testing.T) {
	if code := Run([]string{"corvid", "check", filepath.Join(t.TempDir(), "absent.cv")}); code != 1 {
		t.Error("check should fail on a missing file")
	}
}

func TestUnknownCommand(t *testing.T) {
	if code := Run([]string{"corvid", "frobnicate"}); code != 1 {
		t.Error("unknown commands should fail")
	}
}

func TestWarningsAsErrors(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "corvid.yaml")
	if err := os.WriteFile(cfgPath, []byte("warnings_as_errors: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "warn.cv")
	source := `
pub fn f() -> Int {
	$return 1
	2
}
`
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	if code := Run([]string{"corvid", "check", path}); code != 1 {
		t.Error("unreachable code should fail the build with warnings_as_errors")
	}
}
