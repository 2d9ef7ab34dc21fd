package tokens

import (
	"context"
	"go/ast"
	"go/token"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/specimen-dev/specimen/settings"
)

// Equal reports whether a and b hold equivalent token sequences under the
// settings carried by ctx. When both sides parse as complete units they are
// compared structurally there; else both are tried as expressions; else the
// canonical token texts are compared. Doc comments participate in the
// structural comparisons only when the ignore-docs setting is off; the raw
// fallback compares token text, which never contains comments.
func Equal(ctx context.Context, a, b *Tree) bool {
	// An empty tree equals only another empty tree; stray separators parse
	// to the same empty structure but are still tokens.
	if a.Empty() || b.Empty() {
		return a.Empty() == b.Empty()
	}

	keepDocs := !settings.From(ctx).IgnoreDocsForTokens

	ua, aUnit := a.parseUnit()
	ub, bUnit := b.parseUnit()
	if aUnit && bUnit {
		// A bare declaration list never equals a fragment that carries its
		// own package clause: the clause tokens are part of the sequence.
		if ua.synthesized != ub.synthesized {
			return false
		}
		normalizeUnitComments(ua.file, keepDocs)
		normalizeUnitComments(ub.file, keepDocs)
		return equalStructure(ua.file, ub.file)
	}

	ea, aExpr := a.parseExpr()
	eb, bExpr := b.parseExpr()
	if aExpr && bExpr {
		ea.expr = normalizeExprComments(ea.expr, keepDocs)
		eb.expr = normalizeExprComments(eb.expr, keepDocs)
		return equalStructure(ea.expr, eb.expr)
	}

	return a.String() == b.String()
}

// equalStructure is deep structural equality over go/ast nodes:
// position-insensitive, order-sensitive. Comment groups compare by text
// since their positions are ignored with everything else.
func equalStructure(a, b ast.Node) bool {
	return cmp.Equal(a, b, astCompareOptions()...)
}

func astCompareOptions() []cmp.Option {
	return []cmp.Option{
		cmpopts.IgnoreTypes(token.NoPos),
		cmpopts.IgnoreFields(ast.Ident{}, "Obj"),
		cmpopts.IgnoreFields(ast.File{}, "Scope", "Imports", "Unresolved", "Comments", "GoVersion"),
	}
}
