package generator

import (
	"strings"

	"github.com/calumari/ts2mbt/internal/tsast"
)

// functionSignature renders the parameter types and return type of a
// function type. A missing return annotation is treated as void.
func (g *generator) functionSignature(fn *tsast.Node) (params []string, ret string) {
	for _, p := range tsast.Parameters(fn.Field("parameters")) {
		t := g.annotatedType(p)
		if p.Kind() == tsast.KindOptionalParameter {
			t = nullable(t)
		}
		params = append(params, t)
	}
	ret = g.transformType(tsast.Unwrap(fn.Field("return_type")))
	if ret == "" {
		ret = mbtUnit
	}
	return params, ret
}

// inlineFunctionType renders a function type as a MoonBit arrow type.
func (g *generator) inlineFunctionType(fn *tsast.Node) string {
	params, ret := g.functionSignature(fn)
	return "(" + strings.Join(params, ", ") + ") -> " + ret
}

// functionAlias names a function type structurally and registers a type
// alias for it: (a: number) => string becomes Fn_Double_To_String.
func (g *generator) functionAlias(fn *tsast.Node) string {
	params, ret := g.functionSignature(fn)

	var b strings.Builder
	b.WriteString("Fn")
	for _, p := range params {
		b.WriteString("_")
		b.WriteString(formatTypeName(p))
	}
	if ret != mbtUnit {
		b.WriteString("_To_")
		b.WriteString(formatTypeName(ret))
	}
	return g.ensureAlias(b.String(), "("+strings.Join(params, ", ")+") -> "+ret)
}
