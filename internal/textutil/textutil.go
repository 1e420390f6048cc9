// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textutil holds text helpers for turning term descriptions into
// short plain-text summaries.
package textutil

import (
	"strings"

	"golang.org/x/net/html"
)

// DefaultLengthHint is the summary length ShortenOnSentence aims for.
const DefaultLengthHint = 250

// StripHTMLTags returns the text content of an HTML fragment with all
// markup removed. Entities are decoded.
func StripHTMLTags(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}

// ShortenOnSentence trims text to whole sentences once it exceeds
// lengthHint characters. Sentences end at '.', '!' or '?'. Sentences are
// accumulated until the result passes lengthHint; "..." marks a cut that
// dropped more than one trailing character.
func ShortenOnSentence(text string, lengthHint int) string {
	if len(text) <= lengthHint {
		return text
	}
	text = strings.TrimSpace(text)

	var out strings.Builder
	rest := text
	for rest != "" {
		i := strings.IndexAny(rest, ".!?")
		if i < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:i+1])
		rest = rest[i+1:]
		if out.Len() > lengthHint {
			break
		}
	}

	if len(text) > out.Len()+1 {
		out.WriteString("...")
	}
	return out.String()
}
