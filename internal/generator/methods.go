package generator

import (
	"fmt"
	"maps"
	"strings"

	"github.com/calumari/ts2mbt/internal/tsast"
)

// methodShim models the extern "js" wrapper for one method signature.
// Overloads are told apart by a numeric suffix from the second occurrence on;
// a suffix that would repeat a declared or emitted name is skipped. bound
// rewrites the type parameters of an inherited declaration.
func (g *generator) methodShim(sb *structBuild, m *tsast.Node, bound map[string]string) shimModel {
	key := tsast.PropertyKey(m)
	name := memberIdent(key)
	if n, seen := sb.overloads[name]; seen {
		base := name
		for {
			n++
			name = fmt.Sprintf("%s%d", base, n+1)
			if !sb.reserved[name] && !sb.shimNames[name] {
				break
			}
		}
		sb.overloads[base] = n
	} else {
		sb.overloads[name] = 0
	}
	sb.shimNames[name] = true

	subst := sb.typeParams
	if tps := m.Field("type_parameters"); tps != nil {
		subst = maps.Clone(sb.typeParams)
		g.constraintSubst(tps, subst)
	}

	mbtParams := []string{"self : " + sb.name}
	jsParams := []string{"self"}
	var args []string
	for _, p := range tsast.Parameters(m.Field("parameters")) {
		pattern := p.Field("pattern")
		if pattern.Kind() == tsast.KindThis {
			continue
		}
		jsName, ident := paramNames(pattern)
		t := substituteTypeParams(substituteTypeParams(g.annotatedType(p), bound), subst)
		if p.Kind() == tsast.KindOptionalParameter {
			t = nullable(t)
		}
		mbtParams = append(mbtParams, ident+" : "+t)
		jsParams = append(jsParams, jsName)
		args = append(args, jsName)
	}

	result := mbtString
	if rt := m.Field("return_type"); rt != nil {
		result = substituteTypeParams(g.transformType(tsast.Unwrap(rt)), bound)
	}

	return shimModel{
		Struct: sb.name,
		Name:   name,
		Params: strings.Join(mbtParams, ", "),
		Result: result,
		JS:     "(" + strings.Join(jsParams, ", ") + ") => " + jsCall(m.Field("name"), key, args),
	}
}

// paramNames returns the JS spelling of a parameter and its MoonBit
// identifier. Rest parameters keep their spread in JS.
func paramNames(pattern *tsast.Node) (js, ident string) {
	if pattern.Kind() == tsast.KindRestPattern {
		inner := pattern.Named(0).Text()
		return "..." + inner, memberIdent(inner)
	}
	return pattern.Text(), memberIdent(pattern.Text())
}

// jsCall renders the forwarded call on self, using bracket access when the
// method name is not a plain identifier.
func jsCall(nameNode *tsast.Node, key string, args []string) string {
	call := "(" + strings.Join(args, ", ") + ")"
	if isJSIdentifier(key) {
		return "self." + key + call
	}
	raw := nameNode.Text()
	if nameNode.Kind() != tsast.KindStringLiteral {
		raw = fmt.Sprintf("%q", key)
	}
	return "self[" + raw + "]" + call
}
