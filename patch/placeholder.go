// Package patch rewrites inline snapshot literals in Go test sources. It
// locates the placeholder literal of an assertion call from the call site's
// file and line, renders replacement content as a literal shaped for that
// site, and applies all of a file's replacements in one atomic rewrite.
package patch

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	internalstrings "github.com/specimen-dev/specimen/internal/strings"
)

// Form classifies how a placeholder literal is written in source.
type Form int

const (
	// FormEmpty is an empty literal of either flavor: `` or "".
	FormEmpty Form = iota
	// FormCompact is a single-line raw literal.
	FormCompact
	// FormExpanded is a multi-line raw literal.
	FormExpanded
	// FormQuoted is an interpreted "..." literal.
	FormQuoted
)

func (f Form) String() string {
	switch f {
	case FormEmpty:
		return "empty"
	case FormCompact:
		return "compact"
	case FormExpanded:
		return "expanded"
	default:
		return "quoted"
	}
}

// Placeholder is a located snapshot literal: the final string argument of a
// recognized assertion call. Placeholders are found in source, never
// constructed by hand.
type Placeholder struct {
	File    string // source file path
	Line    int    // line of the assertion call
	Start   int    // byte offset of the opening delimiter
	End     int    // byte offset just past the closing delimiter
	Indent  string // whitespace prefix of the line holding Start
	Form    Form
	Content string // decoded literal content
}

// assertionNames are the calls whose final string argument is an inline
// snapshot placeholder.
var assertionNames = map[string]bool{
	"TokensInline":        true,
	"TokensInlineContext": true,
}

// Locate finds the placeholder for the assertion call at line in src. The
// line may be any line the call spans. Exactly one recognized call must
// cover it, and the call's final argument must be a plain string literal.
func Locate(src []byte, filename string, line int) (*Placeholder, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	var calls []*ast.CallExpr
	ast.Inspect(file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || !isAssertionCall(call) {
			return true
		}
		startLine := fset.Position(call.Pos()).Line
		endLine := fset.Position(call.End()).Line
		if line >= startLine && line <= endLine {
			calls = append(calls, call)
		}
		return true
	})

	if len(calls) == 0 {
		return nil, fmt.Errorf("%w: %s:%d", ErrNoPlaceholder, filename, line)
	}
	if len(calls) > 1 {
		return nil, fmt.Errorf("%w: %s:%d", ErrAmbiguousPlaceholder, filename, line)
	}

	call := calls[0]
	if len(call.Args) == 0 {
		return nil, fmt.Errorf("%w: %s:%d", ErrNotLiteral, filename, line)
	}
	lit, ok := call.Args[len(call.Args)-1].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return nil, fmt.Errorf("%w: %s:%d", ErrNotLiteral, filename, line)
	}

	content, err := strconv.Unquote(lit.Value)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot literal at %s:%d: %w", filename, line, err)
	}

	start := fset.Position(lit.Pos()).Offset
	end := fset.Position(lit.End()).Offset
	lineStart := bytes.LastIndexByte(src[:start], '\n') + 1
	indent := internalstrings.LeadingWhitespace(string(src[lineStart:start]))

	return &Placeholder{
		File:    filename,
		Line:    fset.Position(call.Pos()).Line,
		Start:   start,
		End:     end,
		Indent:  indent,
		Form:    classifyForm(lit.Value, content),
		Content: content,
	}, nil
}

func isAssertionCall(call *ast.CallExpr) bool {
	switch fn := call.Fun.(type) {
	case *ast.Ident:
		return assertionNames[fn.Name]
	case *ast.SelectorExpr:
		return assertionNames[fn.Sel.Name]
	}
	return false
}

func classifyForm(raw, content string) Form {
	if content == "" {
		return FormEmpty
	}
	if raw[0] == '"' {
		return FormQuoted
	}
	if strings.Contains(content, "\n") {
		return FormExpanded
	}
	return FormCompact
}
