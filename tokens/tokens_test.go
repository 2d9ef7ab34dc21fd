package tokens

import (
	"strings"
	"testing"
)

func mustLex(t *testing.T, src string) *Tree {
	t.Helper()
	tree, err := Lex(src)
	if err != nil {
		t.Fatalf("lex %q: %v", src, err)
	}
	return tree
}

func TestLexCanonicalText(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "  \t\n ",
			want:  "",
		},
		{
			name:  "spaces around punctuation",
			input: "x:=1",
			want:  "x := 1",
		},
		{
			name:  "call arguments",
			input: "f(a,b)",
			want:  "f ( a , b )",
		},
		{
			name:  "index expression",
			input: "map[string]int",
			want:  "map [ string ] int",
		},
		{
			name:  "line break becomes terminator",
			input: "type A int\ntype B int",
			want:  "type A int ; type B int",
		},
		{
			name:  "trailing line break dropped",
			input: "x := 1\n",
			want:  "x := 1",
		},
		{
			name:  "explicit semicolon kept",
			input: "x := 1; y := 2",
			want:  "x := 1 ; y := 2",
		},
		{
			name:  "comments are not tokens",
			input: "x // trailing\n",
			want:  "x",
		},
		{
			name:  "block comment skipped",
			input: "a /* gap */ b",
			want:  "a b",
		},
		{
			name:  "nested groups",
			input: "f(g(h[0]), struct{}{})",
			want:  "f ( g ( h [ 0 ] ) , struct { } { } )",
		},
		{
			name:  "string literal verbatim",
			input: `print("a  b")`,
			want:  `print ( "a  b" )`,
		},
		{
			name:  "terminator inside braces",
			input: "func f() {\n\tx := 1\n}",
			want:  "func f ( ) { x := 1 ; }",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tree := mustLex(t, tc.input)
			if got := tree.String(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestLexEmpty(t *testing.T) {
	tree := mustLex(t, "")
	if !tree.Empty() {
		t.Fatal("expected empty tree")
	}
	tree = mustLex(t, "x")
	if tree.Empty() {
		t.Fatal("expected non-empty tree")
	}
}

func TestLexGroupStructure(t *testing.T) {
	tree := mustLex(t, "f(a)[0]")
	if len(tree.nodes) != 3 {
		t.Fatalf("expected 3 top-level nodes, got %d", len(tree.nodes))
	}
	if tree.nodes[0].IsGroup() {
		t.Fatal("expected leaf for identifier")
	}
	if !tree.nodes[1].IsGroup() || !tree.nodes[2].IsGroup() {
		t.Fatal("expected groups for call and index")
	}
	if len(tree.nodes[1].Nodes) != 1 {
		t.Fatalf("expected 1 node inside call group, got %d", len(tree.nodes[1].Nodes))
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "unterminated string",
			input:   `x := "unclosed`,
			wantErr: "not terminated",
		},
		{
			name:    "unterminated raw string",
			input:   "x := `oops",
			wantErr: "not terminated",
		},
		{
			name:    "mismatched closing delimiter",
			input:   "f(x]",
			wantErr: "mismatched closing delimiter",
		},
		{
			name:    "stray closing delimiter",
			input:   "x}",
			wantErr: "mismatched closing delimiter",
		},
		{
			name:    "unclosed delimiter",
			input:   "f(x",
			wantErr: "unclosed delimiter",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Lex(tc.input)
			if err == nil {
				t.Fatalf("expected error for %q", tc.input)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}
