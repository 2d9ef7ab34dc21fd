// Package specimen snapshot-tests fragments of Go source by token
// structure rather than by exact text.
//
// A snapshot assertion lexes the value under test into a token tree,
// compares it to the recorded snapshot at the most specific structural
// tier that parses (complete compilation unit, then single expression,
// then raw token text), and reports a unified diff when they disagree.
// Whitespace and formatting differences never fail a test; renamed
// identifiers and reordered declarations do.
//
// # Basic Usage
//
// File-based snapshots live under testdata/snapshots/ next to the test:
//
//	func TestGenerate(t *testing.T) {
//	    src := generate()
//	    specimen.Tokens(t, "generated", src)
//	}
//
// Inline snapshots record themselves into the test source. Start with an
// empty literal, run the test, then run `specimen accept`:
//
//	specimen.TokensInline(t, rewrite("x+1"), `x + 1`)
//
// # Updating snapshots
//
// A mismatch fails the test and records the proposed value: inline
// mismatches append to a .pending-snap journal beside the test file,
// file-based mismatches write a .snap.new candidate beside the accepted
// snapshot. Review and apply them with the specimen CLI, or set
// SPECIMEN_UPDATE=always to apply updates during the run itself.
//
// # Configuration
//
// A specimen.toml discovered upward from the test's working directory
// (with a global fallback in ~/.config/specimen/) sets defaults:
//
//	update = "auto"
//	snapshot-dir = "testdata/snapshots"
//	format-tokens = true
//	ignore-docs = true
//
// Per-assertion overrides ride a context.Context through the settings
// package and the *Context assertion variants.
package specimen
