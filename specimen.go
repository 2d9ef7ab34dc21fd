package specimen

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/specimen-dev/specimen/internal/config"
	"github.com/specimen-dev/specimen/settings"
)

// harness is the process-wide assertion environment, resolved once per
// test binary from configuration files and the environment.
type harness struct {
	mode        Mode
	snapshotDir string // "" means the snapfile default
	err         error  // setup failure, surfaced by the first assertion
}

var (
	setupOnce sync.Once
	state     harness
)

// loadHarness resolves the harness exactly once. Setup problems are not
// fatal here; they surface through testing.TB at the first assertion.
func loadHarness() harness {
	setupOnce.Do(func() {
		state = buildHarness()
	})
	return state
}

func buildHarness() harness {
	cwd, err := os.Getwd()
	if err != nil {
		return harness{mode: ModeAuto, err: fmt.Errorf("get working directory: %w", err)}
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return harness{mode: ModeAuto, err: err}
	}

	settings.SetDefaults(settings.Values{
		FormatTokens:        cfg.FormatTokens,
		IgnoreDocsForTokens: cfg.IgnoreDocs,
	})

	mode := ModeAuto
	if cfg.Update != "" {
		mode, err = ParseMode(cfg.Update)
		if err != nil {
			return harness{mode: ModeAuto, err: fmt.Errorf("%s: %w", config.FileName, err)}
		}
	}
	if value := os.Getenv(EnvVar); value != "" {
		mode, err = ParseMode(value)
		if err != nil {
			return harness{mode: ModeAuto, err: fmt.Errorf("%s: %w", EnvVar, err)}
		}
	}

	return harness{mode: mode, snapshotDir: cfg.SnapshotDir}
}

// site is the source location of an assertion call. Snapshot paths and
// inline placeholders key off it.
type site struct {
	file string
	line int
}

// callerSite resolves the file and line of the exported assertion's
// caller.
func callerSite() (site, error) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return site{}, ErrNoCallSite
	}
	return site{file: file, line: line}, nil
}

// displayPath shortens path for messages when it sits under the current
// working directory.
func displayPath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
