package generator

import (
	"strings"

	"github.com/calumari/ts2mbt/internal/tsast"
)

// walk emits the text of n and its descendants in pre-order.
func (g *generator) walk(n *tsast.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(g.emit(n))
	for _, c := range n.Children(g.mode) {
		b.WriteString(g.walk(c))
	}
	return b.String()
}

// emit dispatches declaration nodes to their transformers. Every other node
// contributes nothing of its own.
func (g *generator) emit(n *tsast.Node) string {
	switch n.Kind() {
	case tsast.KindTypeAliasDeclaration:
		return g.typeAlias(n)
	case tsast.KindInterfaceDeclaration:
		return g.interfaceToStruct(n)
	case tsast.KindLexicalDeclaration, tsast.KindVariableDeclaration:
		return g.variableStatement(n)
	}
	return ""
}

// typeAlias renders `type X = T` as a MoonBit typealias.
func (g *generator) typeAlias(n *tsast.Node) string {
	nameNode := n.Field("name")
	if !nameNode.InSource() {
		return ""
	}
	name := capitalize(nameNode.Text())
	target := g.transformType(n.Field("value"))
	if target == "" || target == name {
		// the synthesized enum already carries the alias name
		return ""
	}
	return g.render(tmplTypeAlias, aliasModel{Name: name, Target: target, Exported: n.Exported()})
}

// variableStatement is the hook for top-level variable statements. Values
// have no declaration-level MoonBit counterpart, so nothing is emitted.
func (g *generator) variableStatement(n *tsast.Node) string {
	if n.Parent().Kind() != tsast.KindProgram && n.Parent().Kind() != tsast.KindExportStatement {
		return ""
	}
	for _, d := range n.Children(tsast.ModeNamed) {
		if d.Kind() == tsast.KindVariableDeclarator && d.InSource() {
			g.log.Debugw("variable statement not transpiled", "name", d.Field("name").Text())
		}
	}
	return ""
}
