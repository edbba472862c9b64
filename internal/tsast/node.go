package tsast

import "strings"

// Mode selects how Children enumerates a node.
type Mode int

const (
	// ModeNamed yields the semantically significant children only: named
	// grammar nodes, without comments.
	ModeNamed Mode = iota
	// ModeAll yields every syntactic child including punctuation and keyword
	// tokens.
	ModeAll
)

// ParseMode parses "named" or "all".
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "named":
		return ModeNamed, true
	case "all":
		return ModeAll, true
	}
	return ModeNamed, false
}

func (m Mode) String() string {
	if m == ModeAll {
		return "all"
	}
	return "named"
}

// File is one parsed source file.
type File struct {
	Path   string
	Source []byte
	Root   *Node
	// Errors counts ERROR nodes produced by error recovery.
	Errors int
}

// Node is an immutable syntax node. The zero value and nil are both valid
// empty nodes: every accessor is nil-safe.
type Node struct {
	kind     Kind
	typ      string
	text     string
	named    bool
	start    int
	end      int
	field    string
	parent   *Node
	children []*Node
	file     *File
}

func (n *Node) Kind() Kind {
	if n == nil {
		return KindOther
	}
	return n.kind
}

// Type returns the raw grammar node type.
func (n *Node) Type() string {
	if n == nil {
		return ""
	}
	return n.typ
}

// Text returns the node's source text.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return n.text
}

func (n *Node) IsNamed() bool { return n != nil && n.named }

func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

func (n *Node) File() *File {
	if n == nil {
		return nil
	}
	return n.file
}

// Span returns the byte offsets of the node in its file.
func (n *Node) Span() (start, end int) {
	if n == nil {
		return 0, 0
	}
	return n.start, n.end
}

// FieldName is the grammar field under which the parent holds this node, or "".
func (n *Node) FieldName() string {
	if n == nil {
		return ""
	}
	return n.field
}

// InSource reports whether the node originates from a parsed file and covers
// a non-empty range of it. Synthetic and zero-width (error recovery) nodes
// report false.
func (n *Node) InSource() bool {
	return n != nil && n.file != nil && n.end > n.start
}

// Children enumerates the direct children according to mode.
func (n *Node) Children(mode Mode) []*Node {
	if n == nil {
		return nil
	}
	if mode == ModeAll {
		return n.children
	}
	out := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		if c.named && c.kind != KindComment {
			out = append(out, c)
		}
	}
	return out
}

// Named returns the i-th significant child, or nil.
func (n *Node) Named(i int) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.children {
		if !c.named || c.kind == KindComment {
			continue
		}
		if i == 0 {
			return c
		}
		i--
	}
	return nil
}

// Field returns the first child held under the given grammar field, or nil.
func (n *Node) Field(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.children {
		if c.field == name {
			return c
		}
	}
	return nil
}

// FirstOfKind returns the first direct child of kind k, or nil.
func (n *Node) FirstOfKind(k Kind) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.children {
		if c.kind == k {
			return c
		}
	}
	return nil
}

// HasToken reports whether an anonymous child token with the given text
// exists, e.g. the "?" of an optional property.
func (n *Node) HasToken(tok string) bool {
	if n == nil {
		return false
	}
	for _, c := range n.children {
		if !c.named && c.typ == tok {
			return true
		}
	}
	return false
}

// Exported reports whether a declaration carries an export modifier, looking
// through `declare` wrappers.
func (n *Node) Exported() bool {
	if n == nil {
		return false
	}
	for p := n.parent; p != nil; p = p.parent {
		switch p.kind {
		case KindExportStatement:
			return true
		case KindAmbientDeclaration:
			continue
		}
		return false
	}
	return false
}

// Absent reports whether the node denotes undefined or null, either as a
// keyword or as a literal type.
func (n *Node) Absent() bool {
	if n == nil {
		return false
	}
	if n.kind.IsAbsence() {
		return true
	}
	return n.kind == KindLiteralType && n.Named(0).Kind().IsAbsence()
}

// Unwrap returns the type inside a type annotation (": T"). Other nodes are
// returned unchanged.
func Unwrap(n *Node) *Node {
	if n.Kind() == KindTypeAnnotation {
		if t := n.Named(0); t != nil {
			return t
		}
		return nil
	}
	return n
}

// TypeName returns the referenced name of a type reference: the identifier
// of a generic type, or the last segment of a qualified name.
func TypeName(n *Node) string {
	switch n.Kind() {
	case KindTypeIdentifier, KindIdentifier:
		return n.Text()
	case KindGenericType:
		return TypeName(n.Field("name"))
	case KindNestedTypeIdentifier:
		if id := n.Field("name"); id != nil {
			return id.Text()
		}
		t := n.Text()
		return t[strings.LastIndex(t, ".")+1:]
	}
	return ""
}

// PropertyKey returns the member name of a property or method signature with
// string-literal quotes removed. Computed names yield "".
func PropertyKey(member *Node) string {
	name := member.Field("name")
	switch name.Kind() {
	case KindStringLiteral:
		return strings.Trim(name.Text(), `"'`)
	case KindComputedPropertyName:
		return ""
	}
	return name.Text()
}

// Parameters returns the parameter nodes of a formal parameter list.
func Parameters(formal *Node) []*Node {
	var out []*Node
	for _, c := range formal.Children(ModeNamed) {
		if c.kind == KindRequiredParameter || c.kind == KindOptionalParameter {
			out = append(out, c)
		}
	}
	return out
}

// Walk visits n and its descendants in pre-order until fn returns false for
// a node, in which case that node's children are skipped.
func Walk(n *Node, mode Mode, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children(mode) {
		Walk(c, mode, fn)
	}
}
