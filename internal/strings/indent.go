package strings

import "strings"

// LeadingWhitespace returns the run of spaces and tabs at the start of value,
// up to the first other character or end of input.
func LeadingWhitespace(value string) string {
	for i := 0; i < len(value); i++ {
		if value[i] != ' ' && value[i] != '\t' {
			return value[:i]
		}
	}
	return value
}

// IndentLines prefixes every non-empty line of value with prefix. Empty lines
// stay empty so indented blocks carry no trailing whitespace.
func IndentLines(value, prefix string) string {
	if value == "" {
		return value
	}
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
