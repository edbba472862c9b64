package generator

import (
	"strings"

	"github.com/calumari/ts2mbt/internal/tsast"
)

// canonical names of the MoonBit types the transformer produces directly
const (
	mbtBool   = "Bool"
	mbtDouble = "Double"
	mbtString = "String"
	mbtJSON   = "Json"
	mbtUnit   = "Unit"
)

// transformType renders a TypeScript type node as a MoonBit type. It may
// register synthetic enums and aliases as a side effect. A nil node yields "".
func (g *generator) transformType(n *tsast.Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind() {
	case tsast.KindTypeAnnotation:
		return g.transformType(tsast.Unwrap(n))
	case tsast.KindBooleanKeyword:
		return mbtBool
	case tsast.KindNumberKeyword, tsast.KindBigintKeyword:
		return mbtDouble
	case tsast.KindStringKeyword, tsast.KindSymbolKeyword:
		return mbtString
	case tsast.KindUndefinedKeyword, tsast.KindNullKeyword:
		return mbtJSON
	case tsast.KindNullableType:
		return nullable(g.transformType(n.Named(0)))
	case tsast.KindUnknownKeyword, tsast.KindObjectKeyword, tsast.KindObjectType:
		return mbtJSON
	case tsast.KindAnyKeyword:
		return mbtString
	case tsast.KindVoidKeyword, tsast.KindNeverKeyword:
		return mbtUnit
	case tsast.KindUnionType:
		return g.transformUnion(n)
	case tsast.KindFunctionType:
		return g.inlineFunctionType(n)
	case tsast.KindLookupType:
		return g.transformType(n.Named(0)) + "[" + g.transformType(n.Named(1)) + "]"
	case tsast.KindTypeIdentifier, tsast.KindGenericType, tsast.KindNestedTypeIdentifier:
		return g.transformReference(n)
	case tsast.KindArrayType:
		return "Array[" + g.transformType(n.Named(0)) + "]"
	case tsast.KindLiteralType:
		return literalType(n)
	case tsast.KindStringLiteral:
		return mbtString
	case tsast.KindNumberLiteral:
		return mbtDouble
	case tsast.KindTrueLiteral, tsast.KindFalseLiteral:
		return mbtBool
	case tsast.KindParenthesizedType:
		return "(" + g.transformType(n.Named(0)) + ")"
	case tsast.KindTemplateLiteralType:
		return g.templateLiteralEnum(n)
	case tsast.KindReadonlyType:
		return g.transformType(n.Named(0))
	}
	return fallbackType(n)
}

// fallbackType preserves an unrecognized construct verbatim.
func fallbackType(n *tsast.Node) string {
	if !n.InSource() {
		return ""
	}
	return capitalize(strings.TrimSpace(n.Text()))
}

func literalType(n *tsast.Node) string {
	switch lit := n.Named(0); lit.Kind() {
	case tsast.KindStringLiteral:
		return mbtString
	case tsast.KindTrueLiteral, tsast.KindFalseLiteral:
		return mbtBool
	case tsast.KindUndefinedKeyword, tsast.KindNullKeyword:
		return mbtJSON
	case tsast.KindNumberLiteral:
		return mbtDouble
	default:
		// negative numbers parse as a unary expression
		if strings.HasPrefix(strings.TrimSpace(lit.Text()), "-") {
			return mbtDouble
		}
	}
	return fallbackType(n)
}

// transformReference renders a named type with its type arguments.
// Record<K, V> and Map<K, V> become Map[K, V].
func (g *generator) transformReference(n *tsast.Node) string {
	name := n.Text()
	var args []string
	if n.Kind() == tsast.KindGenericType {
		name = n.Field("name").Text()
		for _, a := range n.Field("type_arguments").Children(tsast.ModeNamed) {
			args = append(args, g.transformType(a))
		}
	}
	if (name == "Record" || name == "Map") && len(args) == 2 {
		return "Map[" + args[0] + ", " + args[1] + "]"
	}
	if len(args) > 0 {
		return capitalize(name) + "[" + strings.Join(args, ", ") + "]"
	}
	return capitalize(name)
}

// transformUnion collapses `T | undefined` to T? and hands every other union
// to the enum generator.
func (g *generator) transformUnion(n *tsast.Node) string {
	members := unionMembers(n)
	var unique []string
	rendered := map[string]string{}
	absent := false
	for _, m := range members {
		key, t := "Undefined", ""
		if m.Absent() {
			absent = true
		} else {
			t = g.transformType(m)
			key = t
			// literals are distinct members, as they are in the enum
			if lit, ok := stringLiteral(m); ok {
				key = stringLiteralTag(lit)
			}
		}
		if _, dup := rendered[key]; !dup {
			rendered[key] = t
			unique = append(unique, key)
		}
	}
	switch {
	case len(unique) == 2 && absent:
		for _, u := range unique {
			if u != "Undefined" {
				return nullable(rendered[u])
			}
		}
	case len(unique) == 1:
		if absent {
			return mbtJSON
		}
		if !hasStringLiteral(members) {
			return unique[0]
		}
	}
	return g.unionToEnum(members)
}

// unionMembers flattens nested binary union nodes into their leaves.
func unionMembers(n *tsast.Node) []*tsast.Node {
	var out []*tsast.Node
	for _, c := range n.Children(tsast.ModeNamed) {
		if c.Kind() == tsast.KindUnionType {
			out = append(out, unionMembers(c)...)
			continue
		}
		out = append(out, c)
	}
	return out
}

func nullable(t string) string {
	if t == "" || strings.HasSuffix(t, "?") {
		return t
	}
	return t + "?"
}

// annotatedType renders the declared type of a property or parameter node.
// A missing annotation is an implicit any.
func (g *generator) annotatedType(decl *tsast.Node) string {
	t := tsast.Unwrap(decl.Field("type"))
	if t == nil {
		return mbtString
	}
	return g.transformType(t)
}
