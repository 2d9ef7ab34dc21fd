package patch

import (
	"strconv"
	"strings"

	internalstrings "github.com/specimen-dev/specimen/internal/strings"
)

// Kind selects the literal-rendering policy for a placeholder's content.
type Kind string

const (
	// KindTokens is token-snapshot content: raw literals preferred, with
	// multi-line content expanded and re-indented to the call site.
	KindTokens Kind = "tokens"
	// KindString is plain-text content: quoted when a single line, raw
	// otherwise.
	KindString Kind = "string"
)

// Literal renders content as the source literal for a placeholder of kind k
// whose line starts with indent.
func (k Kind) Literal(content, indent string) string {
	if k == KindString {
		return stringLiteral(content, indent)
	}
	return tokensLiteral(content, indent)
}

func tokensLiteral(content, indent string) string {
	if content == "" {
		return `""`
	}
	if strings.Contains(content, "`") {
		return strconv.Quote(content)
	}
	if !strings.Contains(content, "\n") {
		return "`" + content + "`"
	}
	return expandedRawLiteral(content, indent)
}

func stringLiteral(content, indent string) string {
	if !strings.Contains(content, "\n") || strings.Contains(content, "`") {
		return strconv.Quote(content)
	}
	return expandedRawLiteral(content, indent)
}

// expandedRawLiteral lays content out as a block: opening backquote on the
// call line, every content line re-indented one unit past the placeholder
// line's prefix, closing backquote on its own line at that prefix.
func expandedRawLiteral(content, indent string) string {
	body := strings.TrimPrefix(content, "\n")
	body = internalstrings.TrimTrailingWhitespace(body)
	body = internalstrings.IndentLines(body, indent+indentUnit(indent))
	return "`\n" + body + "\n" + indent + "`"
}

// indentUnit is one more level of indentation under a line with the given
// prefix: a tab in tab-indented files, four spaces otherwise.
func indentUnit(indent string) string {
	if strings.Contains(indent, "\t") {
		return "\t"
	}
	return "    "
}
