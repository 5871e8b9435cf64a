package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSplitDisplay(t *testing.T) {
	data, id := splitDisplay("Data on card: hi\nthere\nID:  0x04ab")
	assert.Equal(t, "Data on card: hi\nthere", data)
	assert.Equal(t, "ID:  0x04ab", id)

	data, id = splitDisplay("no id line")
	assert.Equal(t, "no id line", data)
	assert.Empty(t, id)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "a b", truncate("a\nb"))

	long := strings.Repeat("ü", menuTitleLimit+10)
	got := truncate(long)
	assert.Equal(t, menuTitleLimit, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "…"))
}
