package generator

import (
	"github.com/calumari/ts2mbt/internal/tsast"
)

// baseInterface is an inherited interface with its type parameters bound to
// the arguments its heir passed in the extends clause.
type baseInterface struct {
	decl  *tsast.Node
	subst map[string]string
}

// baseInterfaces returns the interfaces iface inherits from, transitively,
// each base preceded by its own bases. Bases that do not resolve or resolve
// to something other than an interface are skipped, as are repeats, which
// also breaks inheritance cycles.
func (g *generator) baseInterfaces(iface *tsast.Node) []baseInterface {
	var out []baseInterface
	visited := map[*tsast.Node]bool{iface: true}
	var visit func(n *tsast.Node, outer map[string]string)
	visit = func(n *tsast.Node, outer map[string]string) {
		for _, ref := range tsast.ExtendsTypes(n) {
			name := tsast.TypeName(ref)
			decl, ok := g.resolver.Lookup(name)
			if !ok {
				g.log.Debugw("unresolved base", "interface", n.Field("name").Text(), "base", name)
				continue
			}
			if decl.Kind() != tsast.KindInterfaceDeclaration {
				g.log.Debugw("skipping non-interface base", "base", name, "kind", decl.Kind())
				continue
			}
			if visited[decl] {
				continue
			}
			visited[decl] = true
			subst := g.baseBindings(decl, ref, outer)
			visit(decl, subst)
			out = append(out, baseInterface{decl: decl, subst: subst})
		}
	}
	visit(iface, nil)
	return out
}

// baseBindings maps the type parameters of decl to the type arguments of the
// reference ref. Arguments are rendered in the heir's scope, so outer, the
// heir's own bindings, applies to them. Parameters without an argument stay
// unbound.
func (g *generator) baseBindings(decl, ref *tsast.Node, outer map[string]string) map[string]string {
	if ref.Kind() != tsast.KindGenericType {
		return nil
	}
	args := ref.Field("type_arguments").Children(tsast.ModeNamed)
	var subst map[string]string
	i := 0
	for _, tp := range decl.Field("type_parameters").Children(tsast.ModeNamed) {
		if tp.Kind() != tsast.KindTypeParameter {
			continue
		}
		if i >= len(args) {
			break
		}
		if subst == nil {
			subst = map[string]string{}
		}
		subst[capitalize(tp.Field("name").Text())] = substituteTypeParams(g.transformType(args[i]), outer)
		i++
	}
	return subst
}

// constraintSubst records, for each type parameter constrained by
// `keyof Target`, the synthesized key enum that replaces it. Keys are the
// capitalized parameter names as they appear in rendered types.
func (g *generator) constraintSubst(typeParams *tsast.Node, into map[string]string) {
	for _, tp := range typeParams.Children(tsast.ModeNamed) {
		if tp.Kind() != tsast.KindTypeParameter {
			continue
		}
		if enum := g.constraintEnum(tp); enum != "" {
			into[capitalize(tp.Field("name").Text())] = enum
		}
	}
}

// constraintEnum synthesizes <Target>Keys for a `keyof Target` constraint
// and returns its name. Other constraints are transformed for their side
// effects only and yield "".
func (g *generator) constraintEnum(tp *tsast.Node) string {
	c := tp.Field("constraint")
	if c == nil {
		return ""
	}
	t := c.Named(0)
	if t.Kind() != tsast.KindIndexTypeQuery {
		g.transformType(t)
		return ""
	}
	target := t.Named(0)
	if !target.Kind().IsTypeReference() {
		return ""
	}
	name := tsast.TypeName(target)
	decl, ok := g.resolver.Lookup(name)
	if !ok {
		g.log.Debugw("unresolved keyof target", "type", name)
		return ""
	}
	return g.ensureEnum(capitalize(name)+"Keys", func() []variantModel {
		var vs []variantModel
		seen := map[string]bool{}
		for _, key := range g.resolver.MemberNames(decl) {
			tag := formatTypeName(cleanPropertyName(key))
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			vs = append(vs, variantModel{Tag: tag})
		}
		return vs
	})
}
