package tsast

// Index resolves type names to their declarations across a set of files.
// The first declaration of a name wins; later interface declarations with the
// same name are kept as merge candidates for MemberNames.
type Index struct {
	decls  map[string]*Node
	merged map[string][]*Node
}

// NewIndex indexes the interface and type alias declarations of files.
func NewIndex(files ...*File) *Index {
	idx := &Index{decls: map[string]*Node{}, merged: map[string][]*Node{}}
	for _, f := range files {
		if f != nil {
			idx.Add(f.Root)
		}
	}
	return idx
}

// Add indexes every declaration below root.
func (idx *Index) Add(root *Node) {
	Walk(root, ModeNamed, func(n *Node) bool {
		switch n.Kind() {
		case KindInterfaceDeclaration, KindTypeAliasDeclaration:
			name := n.Field("name").Text()
			if name == "" {
				return false
			}
			if _, ok := idx.decls[name]; !ok {
				idx.decls[name] = n
			}
			if n.Kind() == KindInterfaceDeclaration {
				idx.merged[name] = append(idx.merged[name], n)
			}
			return false
		}
		return true
	})
}

// Lookup returns the first declaration of name.
func (idx *Index) Lookup(name string) (*Node, bool) {
	if idx == nil {
		return nil, false
	}
	n, ok := idx.decls[name]
	return n, ok
}

// Len returns the number of indexed names.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.decls)
}

// MemberNames lists the property and method names of the type declared by
// decl: own members in declaration order first, then inherited members not
// already present. Type aliases contribute the members of their object type,
// intersection parts or referenced declaration.
func (idx *Index) MemberNames(decl *Node) []string {
	var names []string
	seen := map[string]bool{}
	visiting := map[*Node]bool{}
	idx.collectMembers(decl, seen, visiting, &names)
	return names
}

func (idx *Index) collectMembers(n *Node, seen map[string]bool, visiting map[*Node]bool, out *[]string) {
	if n == nil || visiting[n] {
		return
	}
	visiting[n] = true
	defer delete(visiting, n)

	switch n.Kind() {
	case KindInterfaceDeclaration:
		decls := []*Node{n}
		if merged := idx.merged[n.Field("name").Text()]; len(merged) > 0 && merged[0] == n {
			decls = merged
		}
		for _, d := range decls {
			addMembers(d.Field("body"), seen, out)
		}
		for _, d := range decls {
			for _, base := range ExtendsTypes(d) {
				if target, ok := idx.Lookup(TypeName(base)); ok {
					idx.collectMembers(target, seen, visiting, out)
				}
			}
		}
	case KindTypeAliasDeclaration:
		idx.collectMembers(n.Field("value"), seen, visiting, out)
	case KindObjectType:
		addMembers(n, seen, out)
	case KindIntersectionType, KindParenthesizedType:
		for _, c := range n.Children(ModeNamed) {
			idx.collectMembers(c, seen, visiting, out)
		}
	case KindTypeIdentifier, KindGenericType, KindNestedTypeIdentifier:
		if target, ok := idx.Lookup(TypeName(n)); ok {
			idx.collectMembers(target, seen, visiting, out)
		}
	}
}

func addMembers(body *Node, seen map[string]bool, out *[]string) {
	for _, m := range body.Children(ModeNamed) {
		if m.Kind() != KindPropertySignature && m.Kind() != KindMethodSignature {
			continue
		}
		key := PropertyKey(m)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		*out = append(*out, key)
	}
}

// ExtendsTypes returns the type expressions named in an interface's extends
// clause, in source order.
func ExtendsTypes(iface *Node) []*Node {
	clause := iface.FirstOfKind(KindExtendsTypeClause)
	return clause.Children(ModeNamed)
}
