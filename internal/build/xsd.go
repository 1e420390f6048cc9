// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import "github.com/pdiddy/schema-builder/internal/rdf"

// xsdTypes maps vocabulary datatypes to their XML Schema equivalents.
var xsdTypes = map[string]string{
	"Boolean":  rdf.XSD + "boolean",
	"Date":     rdf.XSD + "date",
	"DateTime": rdf.XSD + "dateTime",
	"Float":    rdf.XSD + "float",
	"Integer":  rdf.XSD + "integer",
	"Number":   rdf.XSD + "decimal",
	"Text":     rdf.XSD + "string",
	"Time":     rdf.XSD + "time",
	"URL":      rdf.XSD + "anyURI",
}
