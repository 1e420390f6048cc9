// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/pdiddy/schema-builder/internal/textutil"
)

const treeRoot = "Thing"

type treeContext struct {
	RDFS        string            `json:"rdfs"`
	Schema      string            `json:"schema"`
	SubClassOf  map[string]string `json:"rdfs:subClassOf"`
	Description string            `json:"description"`
	Children    map[string]string `json:"children"`
}

type treeNode struct {
	Context     *treeContext `json:"@context,omitempty"`
	Type        string       `json:"@type"`
	ID          string       `json:"@id"`
	Name        string       `json:"name"`
	SubClassOf  any          `json:"rdfs:subClassOf,omitempty"`
	Description string       `json:"description"`
	Pending     bool         `json:"pending,omitempty"`
	Attic       bool         `json:"attic,omitempty"`
	Children    []*treeNode  `json:"children,omitempty"`
}

// jsonLDTree renders the class hierarchy under Thing. A class reached
// through more than one parent lists its children only the first time.
func (b *Builder) jsonLDTree(_ context.Context, _ string) (string, error) {
	root := &treeNode{Context: &treeContext{
		RDFS:        "http://www.w3.org/2000/01/rdf-schema#",
		Schema:      b.src.VocabURI(),
		SubClassOf:  map[string]string{"@type": "@id"},
		Description: "rdfs:comment",
		Children:    map[string]string{"@reverse": "rdfs:subClassOf"},
	}}
	visited := make(map[string]bool)
	if err := b.fillTreeNode(treeRoot, root, visited); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "   ")
	if err := enc.Encode(root); err != nil {
		return "", fmt.Errorf("encoding tree: %w", err)
	}
	return escapeNonASCII(strings.TrimSuffix(buf.String(), "\n")), nil
}

// escapeNonASCII writes every rune above U+007F as a lowercase \uXXXX
// escape, using surrogate pairs outside the Basic Multilingual Plane. It is
// only valid on encoded JSON, where such runes occur inside strings.
func escapeNonASCII(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case r < 0x80:
			sb.WriteRune(r)
		case r > 0xffff:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&sb, "\\u%04x\\u%04x", hi, lo)
		default:
			fmt.Fprintf(&sb, "\\u%04x", r)
		}
	}
	return sb.String()
}

func (b *Builder) fillTreeNode(id string, node *treeNode, visited map[string]bool) error {
	t, err := b.src.Term(id)
	if err != nil {
		return err
	}
	node.Type = "rdfs:Class"
	node.ID = "schema:" + t.ID
	node.Name = t.Label
	switch len(t.Supers) {
	case 0:
	case 1:
		node.SubClassOf = "schema:" + t.Supers[0]
	default:
		sups := make([]string, len(t.Supers))
		for i, s := range t.Supers {
			sups[i] = "schema:" + s
		}
		node.SubClassOf = sups
	}
	node.Description = textutil.ShortenOnSentence(textutil.StripHTMLTags(t.Comment), textutil.DefaultLengthHint)
	node.Pending = t.Pending()
	node.Attic = t.Retired()

	if visited[id] {
		return nil
	}
	visited[id] = true
	for _, sub := range t.Subs {
		child := &treeNode{}
		if err := b.fillTreeNode(sub, child, visited); err != nil {
			return err
		}
		node.Children = append(node.Children, child)
	}
	return nil
}
