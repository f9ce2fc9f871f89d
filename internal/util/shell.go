// Package util provides common utility functions used across the codebase.
package util

import "strings"

// ShellQuote wraps a string in single quotes, escaping any existing single
// quotes. adb re-joins its shell arguments and hands them to the device's
// shell, so arguments with spaces or metacharacters must be quoted to
// survive the round trip literally.
func ShellQuote(s string) string {
	// Replace ' with '\'' (end quote, escaped quote, start quote)
	escaped := strings.ReplaceAll(s, "'", "'\\''")
	return "'" + escaped + "'"
}

// NeedsShellQuote reports whether an argument must be quoted before being
// passed through a remote shell.
func NeedsShellQuote(s string) bool {
	if s == "" {
		return true
	}
	return strings.ContainsAny(s, " \t\n'\"\\$`&|;<>(){}[]*?~#")
}

// QuoteArgs quotes each argument that needs it, leaving plain arguments
// untouched for readability in logs.
func QuoteArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if NeedsShellQuote(arg) {
			out[i] = ShellQuote(arg)
		} else {
			out[i] = arg
		}
	}
	return out
}

// Pluralize returns singular if count is 1, otherwise plural.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
