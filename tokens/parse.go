package tokens

import (
	"go/ast"
	"go/parser"
	"go/token"
)

// FormKind identifies the parse tier that accepted a tree.
type FormKind int

const (
	// CompleteUnit parses as a compilation unit: either a fragment carrying
	// its own package clause, or a bare list of top-level declarations.
	CompleteUnit FormKind = iota
	// Expression parses as a single expression.
	Expression
	// Unparsed fits neither tier; the canonical token text is the value.
	Unparsed
)

func (k FormKind) String() string {
	switch k {
	case CompleteUnit:
		return "complete unit"
	case Expression:
		return "expression"
	default:
		return "unparsed"
	}
}

// Form is the tagged result of the ordered parse attempts. Obtain one from
// Tree.Parse; the zero Form is meaningless.
type Form struct {
	Kind FormKind

	unit unitForm
	expr exprForm
}

type unitForm struct {
	fset        *token.FileSet
	file        *ast.File
	synthesized bool
}

type exprForm struct {
	fset *token.FileSet
	expr ast.Expr
}

// Bare declaration lists are parsed under this clause, which is stripped
// again before rendering and recorded so such units never compare equal to
// fragments carrying a real package clause.
const syntheticClause = "package p\n"

// Parse attempts the tiers in order and returns the first that accepts the
// tree's source. It cannot fail: Unparsed is the universal fallback.
func (t *Tree) Parse() Form {
	if u, ok := t.parseUnit(); ok {
		return Form{Kind: CompleteUnit, unit: u}
	}
	if e, ok := t.parseExpr(); ok {
		return Form{Kind: Expression, expr: e}
	}
	return Form{Kind: Unparsed}
}

func (t *Tree) parseUnit() (unitForm, bool) {
	src := t.src
	synthesized := false
	if !t.startsWith(token.PACKAGE) {
		src = syntheticClause + src
		synthesized = true
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return unitForm{}, false
	}
	return unitForm{fset: fset, file: file, synthesized: synthesized}, true
}

func (t *Tree) parseExpr() (exprForm, bool) {
	fset := token.NewFileSet()
	expr, err := parser.ParseExprFrom(fset, "", t.src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return exprForm{}, false
	}
	return exprForm{fset: fset, expr: expr}, true
}
