package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVideoURL(t *testing.T) {
	assert.True(t, IsVideoURL("https://www.youtube.com/watch?v=abc123"))
	assert.True(t, IsVideoURL("https://youtube.com/watch?v=abc123"))
	assert.True(t, IsVideoURL("http://youtu.be/abc123"))
	assert.True(t, IsVideoURL("https://youtu.be/abc123"))

	assert.False(t, IsVideoURL("https://vimeo.com/12345"))
	assert.False(t, IsVideoURL("https://youtube.com/"))
	assert.False(t, IsVideoURL("ftp://youtube.com/watch"))
	assert.False(t, IsVideoURL("youtube.com/watch?v=abc"))
	assert.False(t, IsVideoURL(""))
}

func TestDeriveTitle(t *testing.T) {
	assert.Equal(t, "one two three four five six",
		DeriveTitle("one two three four five six seven eight"))
	assert.Equal(t, "short transcript", DeriveTitle("short transcript"))
	assert.Equal(t, "a b c", DeriveTitle("  a\n b \t c  "))
	assert.Equal(t, "Untitled Thread", DeriveTitle(""))
	assert.Equal(t, "Untitled Thread", DeriveTitle("   \n\t "))
}
