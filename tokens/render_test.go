package tokens

import (
	"context"
	"testing"

	"github.com/specimen-dev/specimen/settings"
)

func TestRender(t *testing.T) {
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
			name:  "declaration reformatted",
			input: "type  Foo  struct{   }",
			want:  "type Foo struct{}",
		},
		{
			name:  "declaration list",
			input: "type A int\ntype B int",
			want:  "type A int\ntype B int",
		},
		{
			name:  "function body indented with spaces",
			input: "func hello() {\nreturn\n}",
			want:  "func hello() {\n    return\n}",
		},
		{
			name:  "fragment with package clause",
			input: "package main\n\nvar x = 1",
			want:  "package main\n\nvar x = 1",
		},
		{
			name:  "expression reformatted",
			input: "[]int{1,2,3}",
			want:  "[]int{1, 2, 3}",
		},
		{
			name:  "statement falls back to token text",
			input: "x:=1",
			want:  "x := 1",
		},
		{
			name:  "keyword fragment falls back to token text",
			input: "for range",
			want:  "for range",
		},
		{
			name:  "doc comments dropped by default",
			input: "// Foo is a widget.\ntype Foo struct{}",
			want:  "type Foo struct{}",
		},
		{
			name:  "free comments never render",
			input: "type A int\n\n// between the types\n\ntype B int",
			want:  "type A int\n\ntype B int",
		},
	}

	ctx := context.Background()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tree := mustLex(t, tc.input)
			if got := Render(ctx, tree); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRenderKeepsDocsWhenAsked(t *testing.T) {
	ctx := settings.With(context.Background(), settings.IgnoreDocsForTokens(false))
	tree := mustLex(t, "// Foo is a widget.\ntype Foo struct{}")

	want := "// Foo is a widget.\ntype Foo struct{}"
	if got := Render(ctx, tree); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRenderFormatOff(t *testing.T) {
	ctx := settings.With(context.Background(), settings.FormatTokens(false))

	tree := mustLex(t, "type Foo struct{}")
	if got := Render(ctx, tree); got != "type Foo struct { }" {
		t.Fatalf("expected %q, got %q", "type Foo struct { }", got)
	}

	tree = mustLex(t, "func hello() {\nreturn\n}")
	if got := Render(ctx, tree); got != "func hello ( ) { return ; }" {
		t.Fatalf("expected %q, got %q", "func hello ( ) { return ; }", got)
	}
}

func TestRenderInline(t *testing.T) {
	ctx := context.Background()

	single := mustLex(t, "1 + 2")
	if got := RenderInline(ctx, single); got != "1 + 2" {
		t.Fatalf("expected %q, got %q", "1 + 2", got)
	}

	multi := mustLex(t, "func hello() {\nreturn\n}")
	want := "\nfunc hello() {\n    return\n}\n"
	if got := RenderInline(ctx, multi); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	inputs := []string{
		"type Foo struct{}",
		"type A int\ntype B int",
		"func hello() {\n\treturn\n}",
		"package main\n\nvar x = 1",
		"1 + 2",
		"[]int{1, 2, 3}",
		"struct{ X int }",
	}

	ctx := context.Background()
	for _, input := range inputs {
		tree := mustLex(t, input)
		rendered := Render(ctx, tree)
		again := mustLex(t, rendered)
		if !Equal(ctx, tree, again) {
			t.Errorf("round trip changed %q: rendered %q", input, rendered)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	ctx := context.Background()
	a := mustLex(t, "type Foo struct{}")
	b := mustLex(t, "type  Foo  struct {}")

	if !Equal(ctx, a, b) {
		t.Fatal("expected trees to compare equal")
	}
	if Render(ctx, a) != Render(ctx, b) {
		t.Fatalf("equal trees rendered differently: %q vs %q", Render(ctx, a), Render(ctx, b))
	}
}
