package generator

import (
	"github.com/calumari/ts2mbt/internal/tsast"
)

// structBuild accumulates one interface's struct while its members are
// collected.
type structBuild struct {
	name       string
	members    *memberTable
	overloads  map[string]int
	reserved   map[string]bool // method names declared anywhere in the hierarchy
	shimNames  map[string]bool
	typeParams map[string]string
	indexers   []indexerModel
	shims      []shimModel
}

// interfaceToStruct renders an interface as a struct with a constructor shim,
// index accessor shims and method shims. Inherited members are flattened in
// base-first order; own members override them in place.
func (g *generator) interfaceToStruct(iface *tsast.Node) string {
	nameNode := iface.Field("name")
	if !nameNode.InSource() {
		return ""
	}
	sb := &structBuild{
		name:       capitalize(nameNode.Text()),
		members:    newMemberTable(),
		overloads:  map[string]int{},
		reserved:   map[string]bool{},
		shimNames:  map[string]bool{},
		typeParams: map[string]string{},
	}
	g.constraintSubst(iface.Field("type_parameters"), sb.typeParams)

	bases := g.baseInterfaces(iface)
	for _, base := range bases {
		sb.reserve(base.decl)
	}
	sb.reserve(iface)
	for _, base := range bases {
		g.collectMembers(sb, base.decl, false, base.subst)
	}
	g.collectMembers(sb, iface, true, nil)

	model := structModel{
		Name:     sb.name,
		Exported: iface.Exported(),
		Indexers: sb.indexers,
		Methods:  sb.shims,
	}
	sb.members.each(func(key string, m member) {
		if m.kind != memberProperty {
			return
		}
		t := substituteTypeParams(g.annotatedType(m.node), m.subst)
		if m.node.HasToken("?") {
			t = nullable(t)
		}
		model.Fields = append(model.Fields, fieldModel{Name: memberIdent(key), Type: t})
	})
	return g.render(tmplStruct, model)
}

// reserve records the method names decl declares so overload suffixes
// never collide with them.
func (sb *structBuild) reserve(decl *tsast.Node) {
	for _, m := range decl.Field("body").Children(tsast.ModeNamed) {
		if m.Kind() == tsast.KindMethodSignature {
			if key := tsast.PropertyKey(m); key != "" {
				sb.reserved[memberIdent(key)] = true
			}
		}
	}
}

// collectMembers adds the members of decl's body to the table. Index
// signatures count only for the interface being rendered. bound maps decl's
// type parameters to the arguments the heir supplied.
func (g *generator) collectMembers(sb *structBuild, decl *tsast.Node, own bool, bound map[string]string) {
	for _, m := range decl.Field("body").Children(tsast.ModeNamed) {
		switch m.Kind() {
		case tsast.KindPropertySignature:
			if key := tsast.PropertyKey(m); key != "" {
				sb.members.set(key, member{kind: memberProperty, node: m, subst: bound})
			}
		case tsast.KindMethodSignature:
			key := tsast.PropertyKey(m)
			if key == "" {
				g.log.Debugw("skipping computed method", "interface", sb.name, "method", m.Field("name").Text())
				continue
			}
			sb.members.set(key, member{kind: memberMethod, node: m, subst: bound})
			sb.shims = append(sb.shims, g.methodShim(sb, m, bound))
		case tsast.KindIndexSignature:
			if own {
				g.indexSignature(sb, m)
			}
		default:
			g.log.Debugw("skipping member", "interface", sb.name, "kind", m.Kind())
		}
	}
}

// indexSignature adds op_get/op_set shims for numeric index signatures.
// String and symbol keys have no struct equivalent and are dropped.
func (g *generator) indexSignature(sb *structBuild, sig *tsast.Node) {
	keyType := g.transformType(tsast.Unwrap(sig.Field("index_type")))
	if keyType != mbtDouble {
		g.log.Debugw("dropping index signature", "interface", sb.name, "key", keyType)
		return
	}
	sb.indexers = append(sb.indexers, indexerModel{Struct: sb.name, Elem: g.annotatedType(sig)})
}
