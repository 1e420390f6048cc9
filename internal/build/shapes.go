// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/schema-builder/internal/rdf"
	"github.com/pdiddy/schema-builder/internal/termsource"
	"github.com/pdiddy/schema-builder/pkg/types"
)

// shapeSet describes one node shape per live class: the properties whose
// domain names the class, and what each property's values may be.
type shapeSet struct {
	vocab  string // http form of the vocabulary namespace
	shapes string // namespace of the shape IRIs
	src    *termsource.Source
	ids    []string
	has    map[string]bool
}

// shapeValue is one allowed kind of value: an XML Schema datatype, any
// literal, or an instance of a class.
type shapeValue struct {
	datatype string
	literal  bool
	class    string // term id or absolute IRI
}

func (b *Builder) newShapeSet() *shapeSet {
	vocab := "http://" + b.src.Host() + "/"
	ss := &shapeSet{
		vocab:  vocab,
		shapes: vocab + "shape/",
		src:    b.src,
		has:    make(map[string]bool),
	}
	for _, t := range b.src.AllTerms() {
		if !termsource.InVocabulary(t) || t.Retired() {
			continue
		}
		if (t.Type == types.TermClass || t.Type == types.TermEnumeration) && !b.src.IsDataType(t.ID) {
			ss.ids = append(ss.ids, t.ID)
			ss.has[t.ID] = true
		}
	}
	return ss
}

// properties returns the live properties declared directly on class id.
func (ss *shapeSet) properties(id string) []*types.Term {
	var out []*types.Term
	for _, t := range ss.src.AllTerms() {
		if !t.IsProperty() || t.Retired() {
			continue
		}
		for _, d := range t.DomainIncludes {
			if d == id {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// supers returns the shaped superclasses of class id.
func (ss *shapeSet) supers(id string) []string {
	t, err := ss.src.Term(id)
	if err != nil {
		return nil
	}
	var out []string
	for _, s := range t.Supers {
		if ss.has[s] {
			out = append(out, s)
		}
	}
	return out
}

// iri returns the http form of a term IRI. External IRIs are unchanged.
func (ss *shapeSet) iri(id string) string {
	return ss.src.WithProtocol(ss.src.URI(id), "http")
}

// xsdType returns the XML Schema datatype of id or of its nearest mapped
// ancestor, so that Text subtypes such as CssSelectorType map to xsd:string.
func (ss *shapeSet) xsdType(id string) (string, bool) {
	for _, a := range ss.src.Ancestors(id) {
		if x, ok := xsdTypes[a]; ok {
			return x, true
		}
	}
	return "", false
}

func (ss *shapeSet) values(p *types.Term) []shapeValue {
	var out []shapeValue
	for _, r := range p.RangeIncludes {
		switch x, ok := ss.xsdType(r); {
		case ok:
			out = append(out, shapeValue{datatype: x})
		case ss.src.IsDataType(r):
			out = append(out, shapeValue{literal: true})
		default:
			out = append(out, shapeValue{class: r})
		}
	}
	return out
}

// exportShapes writes the SHACL and ShEx renderings of the class shapes
// into the release directory.
func (b *Builder) exportShapes(_ context.Context, _ string) (string, error) {
	ss := b.newShapeSet()

	shacl, err := ss.shacl()
	if err != nil {
		return "", err
	}
	for _, out := range []struct{ ext, content string }{
		{"shacl", shacl},
		{"shex", ss.shex()},
	} {
		path, err := b.writeFile(fmt.Sprintf("%s/schemaorg-shapes.%s", b.release.Dir(), out.ext), out.content)
		if err != nil {
			return "", err
		}
		b.logger.Info("exported", "path", path)
	}
	return "", nil
}

// shacl renders the shapes as SHACL in Turtle. Property shapes are blank
// nodes labelled <class>-<property>; alternatives become an sh:or list.
func (ss *shapeSet) shacl() (string, error) {
	g := rdf.NewGraph()
	g.Bind("schema", ss.vocab)
	g.Bind("shape", ss.shapes)
	g.Bind("sh", rdf.SH)

	shIRI := func(local string) rdf.Term { return rdf.NewIRI(rdf.SH + local) }
	rdfFirst := rdf.NewIRI(rdf.RDF + "first")
	rdfRest := rdf.NewIRI(rdf.RDF + "rest")
	rdfNil := rdf.NewIRI(rdf.RDF + "nil")

	constraint := func(node rdf.Term, v shapeValue) {
		switch {
		case v.datatype != "":
			g.Add(node, shIRI("datatype"), rdf.NewIRI(v.datatype))
		case v.literal:
			g.Add(node, shIRI("nodeKind"), shIRI("Literal"))
		default:
			g.Add(node, shIRI("class"), rdf.NewIRI(ss.iri(v.class)))
		}
	}

	for _, id := range ss.ids {
		shape := rdf.NewIRI(ss.shapes + id)
		g.Add(shape, rdf.RDFType, shIRI("NodeShape"))
		g.Add(shape, shIRI("targetClass"), rdf.NewIRI(ss.iri(id)))
		for _, sup := range ss.supers(id) {
			g.Add(shape, shIRI("node"), rdf.NewIRI(ss.shapes+sup))
		}

		for _, p := range ss.properties(id) {
			ps := rdf.NewBlank(id + "-" + p.ID)
			g.Add(shape, shIRI("property"), ps)
			g.Add(ps, shIRI("path"), rdf.NewIRI(ss.iri(p.ID)))

			values := ss.values(p)
			switch len(values) {
			case 0:
			case 1:
				constraint(ps, values[0])
			default:
				head := rdf.NewBlank(fmt.Sprintf("%s-%s-or0", id, p.ID))
				g.Add(ps, shIRI("or"), head)
				for i, v := range values {
					item := rdf.NewBlank(fmt.Sprintf("%s-%s-v%d", id, p.ID, i))
					constraint(item, v)
					cell := rdf.NewBlank(fmt.Sprintf("%s-%s-or%d", id, p.ID, i))
					g.Add(cell, rdfFirst, item)
					if i == len(values)-1 {
						g.Add(cell, rdfRest, rdfNil)
					} else {
						g.Add(cell, rdfRest, rdf.NewBlank(fmt.Sprintf("%s-%s-or%d", id, p.ID, i+1)))
					}
				}
			}
		}
	}
	return g.String(rdf.FormatTurtle)
}

// shex renders the shapes in ShEx compact syntax.
func (ss *shapeSet) shex() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PREFIX schema: <%s>\nPREFIX shape: <%s>\nPREFIX xsd: <%s>\n", ss.vocab, ss.shapes, rdf.XSD)

	for _, id := range ss.ids {
		sb.WriteString("\nshape:" + id)
		for _, sup := range ss.supers(id) {
			sb.WriteString(" @shape:" + sup + " AND")
		}
		sb.WriteString(" {")

		props := ss.properties(id)
		for i, p := range props {
			sb.WriteString("\n  schema:" + p.ID + " " + ss.shexValues(ss.values(p)) + " *")
			if i < len(props)-1 {
				sb.WriteString(" ;")
			}
		}
		if len(props) > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("}\n")
	}
	return sb.String()
}

func (ss *shapeSet) shexValues(values []shapeValue) string {
	if len(values) == 0 {
		return "."
	}
	exprs := make([]string, len(values))
	for i, v := range values {
		switch {
		case v.datatype != "":
			exprs[i] = "xsd:" + strings.TrimPrefix(v.datatype, rdf.XSD)
		case v.literal:
			exprs[i] = "LITERAL"
		case ss.has[v.class]:
			exprs[i] = "@shape:" + v.class
		default:
			exprs[i] = "IRI"
		}
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return "( " + strings.Join(exprs, " OR ") + " )"
}
