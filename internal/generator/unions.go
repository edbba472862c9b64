package generator

import (
	"strings"

	"github.com/calumari/ts2mbt/internal/tsast"
)

// unionEntry is one deduplicated union member.
type unionEntry struct {
	canonical string
	tag       string
	payload   string
}

// unionToEnum synthesizes a tagged enum for a structural union and returns
// its name. Members are deduplicated by canonical type, keeping the first
// occurrence; the name joins the member tags in order, so `A | B` and `B | A`
// are distinct enums while two `A | B` unions share one.
func (g *generator) unionToEnum(members []*tsast.Node) string {
	var entries []unionEntry
	seen := map[string]bool{}
	for _, m := range members {
		e := g.unionMember(m)
		if seen[e.canonical] {
			continue
		}
		seen[e.canonical] = true
		entries = append(entries, e)
	}

	tags := make([]string, len(entries))
	for i, e := range entries {
		tags[i] = e.tag
	}
	name := strings.Join(tags, "Or")
	return g.ensureEnum(name, func() []variantModel {
		vs := make([]variantModel, len(entries))
		for i, e := range entries {
			vs[i] = variantModel{Tag: e.tag, Payload: e.payload}
		}
		return vs
	})
}

func (g *generator) unionMember(m *tsast.Node) unionEntry {
	for m.Kind() == tsast.KindParenthesizedType && m.Named(0) != nil {
		m = m.Named(0)
	}
	if m.Kind() == tsast.KindFunctionType {
		alias := g.functionAlias(m)
		return unionEntry{canonical: alias, tag: alias, payload: alias}
	}
	if lit, ok := stringLiteral(m); ok {
		tag := stringLiteralTag(lit)
		return unionEntry{canonical: tag, tag: tag}
	}
	c := g.transformType(m)
	return unionEntry{canonical: c, tag: formatTypeName(c), payload: c}
}

// stringLiteral returns the unquoted value of a string literal type.
func stringLiteral(n *tsast.Node) (string, bool) {
	lit := n
	if n.Kind() == tsast.KindLiteralType {
		lit = n.Named(0)
	}
	if lit.Kind() != tsast.KindStringLiteral {
		return "", false
	}
	text := lit.Text()
	if len(text) >= 2 {
		text = text[1 : len(text)-1]
	}
	return text, true
}

func hasStringLiteral(members []*tsast.Node) bool {
	for _, m := range members {
		if _, ok := stringLiteral(m); ok {
			return true
		}
	}
	return false
}

// stringLiteralTag names the payload-less variant of a string literal:
// "circle" becomes String_circle.
func stringLiteralTag(value string) string {
	frag := memberIdent(value)
	if strings.Trim(frag, "_") == "" {
		frag = "empty"
	}
	return "String_" + frag
}

// templateLiteralEnum wraps a template literal type in a single-case enum
// named after the enclosing type alias.
func (g *generator) templateLiteralEnum(n *tsast.Node) string {
	name := "TemplateLiteral"
	if p := n.Parent(); p.Kind() == tsast.KindTypeAliasDeclaration {
		if id := p.Field("name").Text(); id != "" {
			name = capitalize(id)
		}
	}
	return g.ensureEnum(name, func() []variantModel {
		return []variantModel{{Tag: mbtString, Payload: mbtString}}
	})
}
