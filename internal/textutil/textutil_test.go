// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTMLTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text unchanged", "A person (alive, dead, undead, or fictional).", "A person (alive, dead, undead, or fictional)."},
		{"removes tags", `An <a href="/Event">event</a> happening at a <em>certain</em> time.`, "An event happening at a certain time."},
		{"decodes entities", "Fish &amp; chips", "Fish & chips"},
		{"drops line breaks", "First.<br/>Second.", "First.Second."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTMLTags(tt.in))
		})
	}
}

func TestShortenOnSentence(t *testing.T) {
	t.Run("short text unchanged", func(t *testing.T) {
		assert.Equal(t, "Short. Text.", ShortenOnSentence("Short. Text.", 250))
	})

	t.Run("cuts after the sentence that passes the hint", func(t *testing.T) {
		text := "First sentence here. Second sentence here. Third sentence here."
		got := ShortenOnSentence(text, 25)
		assert.Equal(t, "First sentence here. Second sentence here....", got)
	})

	t.Run("no ellipsis when nothing is dropped", func(t *testing.T) {
		text := strings.Repeat("a", 30) + "."
		assert.Equal(t, text, ShortenOnSentence(text, 10))
	})

	t.Run("text without terminators is kept whole", func(t *testing.T) {
		text := strings.Repeat("word ", 10)
		assert.Equal(t, strings.TrimSpace(text), ShortenOnSentence(text, 5))
	})
}
