// Package tokens lexes fragments of Go source into delimiter-nested token
// trees and works with them at the most specific structural form that
// parses: complete unit, then single expression, then raw token text.
package tokens

import (
	"fmt"
	"go/scanner"
	"go/token"
	"strings"
)

// Tree is a lexed source fragment: leaf tokens and delimiter-balanced
// groups, plus the source text they came from.
type Tree struct {
	src   string
	nodes []Node
}

// Node is one entry in a Tree: a leaf token, or a delimited group when Open
// is set.
type Node struct {
	Tok  token.Token
	Text string

	Open  token.Token // LPAREN, LBRACK, or LBRACE
	Nodes []Node
}

// IsGroup reports whether the node is a delimited group.
func (n Node) IsGroup() bool {
	return n.Open != token.ILLEGAL
}

// Lex tokenizes src. Comments are not tokens and never enter the tree.
// Implicit statement terminators become explicit ";" leaves so that line
// structure survives as tokens, except the one the scanner inserts at end
// of input. Scanner diagnostics and unbalanced delimiters are fatal; the
// returned error carries the scanner's own positions and messages.
func Lex(src string) (*Tree, error) {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var errs scanner.ErrorList
	var s scanner.Scanner
	s.Init(file, []byte(src), func(pos token.Position, msg string) {
		errs.Add(pos, msg)
	}, 0)

	type frame struct {
		open  token.Token
		pos   token.Position
		nodes []Node
	}
	stack := []frame{{}}
	push := func(n Node) {
		top := &stack[len(stack)-1]
		top.nodes = append(top.nodes, n)
	}

	pendingTerm := false
	for {
		pos, tok, lit := s.Scan()
		if pendingTerm {
			pendingTerm = false
			if tok != token.EOF {
				push(Node{Tok: token.SEMICOLON, Text: ";"})
			}
		}
		if tok == token.EOF {
			break
		}
		switch tok {
		case token.ILLEGAL:
			// Already reported through the error handler.
		case token.SEMICOLON:
			if lit == "\n" {
				pendingTerm = true
			} else {
				push(Node{Tok: tok, Text: ";"})
			}
		case token.LPAREN, token.LBRACK, token.LBRACE:
			stack = append(stack, frame{open: tok, pos: fset.Position(pos)})
		case token.RPAREN, token.RBRACK, token.RBRACE:
			if len(stack) == 1 {
				errs.Add(fset.Position(pos), fmt.Sprintf("mismatched closing delimiter %q", tok.String()))
				continue
			}
			top := stack[len(stack)-1]
			if closerFor(top.open) != tok {
				errs.Add(fset.Position(pos), fmt.Sprintf("mismatched closing delimiter %q", tok.String()))
			}
			stack = stack[:len(stack)-1]
			push(Node{Open: top.open, Nodes: top.nodes})
		default:
			text := lit
			if text == "" {
				text = tok.String()
			}
			push(Node{Tok: tok, Text: text})
		}
	}

	for len(stack) > 1 {
		top := stack[len(stack)-1]
		errs.Add(top.pos, fmt.Sprintf("unclosed delimiter %q", top.open.String()))
		stack = stack[:len(stack)-1]
	}

	if len(errs) > 0 {
		errs.Sort()
		return nil, errs.Err()
	}
	return &Tree{src: src, nodes: stack[0].nodes}, nil
}

// Empty reports whether the tree holds no tokens.
func (t *Tree) Empty() bool {
	return len(t.nodes) == 0
}

// String returns the canonical token text: every leaf and delimiter joined
// by single spaces. This is the raw-tier rendering and the raw-tier
// equality key.
func (t *Tree) String() string {
	var parts []string
	flattenNodes(t.nodes, &parts)
	return strings.Join(parts, " ")
}

func flattenNodes(nodes []Node, parts *[]string) {
	for _, n := range nodes {
		if n.IsGroup() {
			*parts = append(*parts, n.Open.String())
			flattenNodes(n.Nodes, parts)
			*parts = append(*parts, closerFor(n.Open).String())
		} else {
			*parts = append(*parts, n.Text)
		}
	}
}

func closerFor(open token.Token) token.Token {
	switch open {
	case token.LPAREN:
		return token.RPAREN
	case token.LBRACK:
		return token.RBRACK
	default:
		return token.RBRACE
	}
}

func (t *Tree) startsWith(tok token.Token) bool {
	return len(t.nodes) > 0 && !t.nodes[0].IsGroup() && t.nodes[0].Tok == tok
}
