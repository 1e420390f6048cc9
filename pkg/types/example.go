// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Example is a markup example attached to one or more vocabulary terms.
// Each markup field holds the example in one syntax; any may be empty.
type Example struct {
	ID        string   `json:"id" yaml:"id"`
	Terms     []string `json:"terms" yaml:"terms"`
	Pre       string   `json:"pre" yaml:"pre"`
	Microdata string   `json:"microdata" yaml:"microdata"`
	RDFa      string   `json:"rdfa" yaml:"rdfa"`
	JSONLD    string   `json:"jsonld" yaml:"jsonld"`
}

// ExampleFile is the on-disk layout of an example definition file.
type ExampleFile struct {
	Examples []Example `json:"examples" yaml:"examples"`
}
