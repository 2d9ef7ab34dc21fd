package tokens

import (
	"bytes"
	"context"
	"go/printer"
	"strings"

	internalstrings "github.com/specimen-dev/specimen/internal/strings"
	"github.com/specimen-dev/specimen/settings"
)

// Snapshot content indents with spaces so recorded literals read the same
// everywhere regardless of editor tab width.
var printConfig = printer.Config{Mode: printer.UseSpaces, Tabwidth: 4}

// Render returns the snapshot text for t under ctx's settings. With
// formatting on, the best parse tier is pretty-printed with docs stripped
// per settings; with formatting off, or when nothing parses, the canonical
// token text is returned. Render never fails: the token text is the
// universal fallback.
func Render(ctx context.Context, t *Tree) string {
	values := settings.From(ctx)
	if !values.FormatTokens {
		return t.String()
	}

	form := t.Parse()
	switch form.Kind {
	case CompleteUnit:
		file := form.unit.file
		normalizeUnitComments(file, !values.IgnoreDocsForTokens)
		var buf bytes.Buffer
		if err := printConfig.Fprint(&buf, form.unit.fset, file); err != nil {
			return t.String()
		}
		out := buf.String()
		if form.unit.synthesized {
			out = dropSyntheticClause(out)
		}
		return internalstrings.TrimTrailingNewlines(out)
	case Expression:
		// Printing a bare expression node never includes comments, so no
		// normalization is needed at this tier.
		var buf bytes.Buffer
		if err := printConfig.Fprint(&buf, form.expr.fset, form.expr.expr); err != nil {
			return t.String()
		}
		return internalstrings.TrimTrailingNewlines(buf.String())
	default:
		return t.String()
	}
}

// RenderInline is Render shaped for embedding in a source literal:
// multi-line content is trimmed of trailing whitespace and bracketed by
// newlines so its first and last lines never touch the literal's
// delimiters. Single-line content passes through unchanged.
func RenderInline(ctx context.Context, t *Tree) string {
	out := Render(ctx, t)
	if !strings.Contains(out, "\n") {
		return out
	}
	return "\n" + internalstrings.TrimTrailingWhitespace(out) + "\n"
}

func dropSyntheticClause(printed string) string {
	i := strings.Index(printed, "\n")
	if i < 0 {
		return ""
	}
	return strings.TrimLeft(printed[i+1:], "\n")
}
