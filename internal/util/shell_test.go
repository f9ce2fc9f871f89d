package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShellQuote(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple string", "hello", "'hello'"},
		{"string with spaces", "hello world", "'hello world'"},
		{"embedded single quote", "it's", "'it'\\''s'"},
		{"empty string", "", "''"},
		{"dollar sign stays literal", "$HOME", "'$HOME'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShellQuote(tt.input))
		})
	}
}

func TestNeedsShellQuote(t *testing.T) {
	assert.False(t, NeedsShellQuote("getprop"))
	assert.False(t, NeedsShellQuote("/proc/loadavg"))
	assert.False(t, NeedsShellQuote("ro.product.model"))

	assert.True(t, NeedsShellQuote(""))
	assert.True(t, NeedsShellQuote("two words"))
	assert.True(t, NeedsShellQuote("a;b"))
	assert.True(t, NeedsShellQuote("glob*"))
	assert.True(t, NeedsShellQuote("$VAR"))
}

func TestQuoteArgs(t *testing.T) {
	got := QuoteArgs([]string{"ls", "-la", "/sdcard/My Files"})
	assert.Equal(t, []string{"ls", "-la", "'/sdcard/My Files'"}, got)
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "device", Pluralize(1, "device", "devices"))
	assert.Equal(t, "devices", Pluralize(0, "device", "devices"))
	assert.Equal(t, "devices", Pluralize(3, "device", "devices"))
}
