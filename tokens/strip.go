package tokens

import (
	"go/ast"

	"golang.org/x/tools/go/ast/astutil"
)

// Comment handling runs on structures freshly parsed by parseUnit or
// parseExpr, which every caller obtains anew from the tree's source.
// Nothing here can reach back into a Tree, so comparison and rendering
// stay pure from the caller's point of view.

// normalizeUnitComments prepares a parsed unit for comparison or printing.
// Line comments and free-floating comments are never part of a snapshot's
// meaning and always go; doc comments survive only when keepDocs is set.
func normalizeUnitComments(file *ast.File, keepDocs bool) {
	docs := make(map[*ast.CommentGroup]bool)
	visit := func(doc **ast.CommentGroup) {
		if *doc == nil {
			return
		}
		if keepDocs {
			docs[*doc] = true
		} else {
			*doc = nil
		}
	}

	visit(&file.Doc)
	astutil.Apply(file, func(c *astutil.Cursor) bool {
		switch n := c.Node().(type) {
		case *ast.GenDecl:
			visit(&n.Doc)
		case *ast.FuncDecl:
			visit(&n.Doc)
		case *ast.TypeSpec:
			visit(&n.Doc)
			n.Comment = nil
		case *ast.ValueSpec:
			visit(&n.Doc)
			n.Comment = nil
		case *ast.ImportSpec:
			visit(&n.Doc)
			n.Comment = nil
		case *ast.Field:
			visit(&n.Doc)
			n.Comment = nil
		}
		return true
	}, nil)

	if !keepDocs {
		file.Comments = nil
		return
	}
	var kept []*ast.CommentGroup
	for _, group := range file.Comments {
		if docs[group] {
			kept = append(kept, group)
		}
	}
	file.Comments = kept
}

// normalizeExprComments is the expression-tier counterpart: struct and
// interface fields are the only nodes that can carry comments there.
func normalizeExprComments(expr ast.Expr, keepDocs bool) ast.Expr {
	result := astutil.Apply(expr, func(c *astutil.Cursor) bool {
		if field, ok := c.Node().(*ast.Field); ok {
			if !keepDocs {
				field.Doc = nil
			}
			field.Comment = nil
		}
		return true
	}, nil)
	return result.(ast.Expr)
}
