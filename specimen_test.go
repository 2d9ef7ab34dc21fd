package specimen

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCallerSite(t *testing.T) {
	at := siteThroughWrapper(t)
	if filepath.Base(at.file) != "specimen_test.go" {
		t.Fatalf("expected call site in specimen_test.go, got %s", at.file)
	}
	if at.line == 0 {
		t.Fatal("expected a nonzero line")
	}
}

// siteThroughWrapper stands in for an exported assertion: callerSite
// resolves the location two frames up, which is this function's caller.
func siteThroughWrapper(t *testing.T) site {
	t.Helper()
	at, err := callerSite()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return at
}

func TestDisplayPath(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("get working directory: %v", err)
	}

	inside := filepath.Join(cwd, "tokens", "parse.go")
	if got := displayPath(inside); got != filepath.Join("tokens", "parse.go") {
		t.Fatalf("expected relative path, got %q", got)
	}

	outside := filepath.Join(string(filepath.Separator), "somewhere", "else.go")
	if got := displayPath(outside); got != outside {
		t.Fatalf("expected %q unchanged, got %q", outside, got)
	}
}
