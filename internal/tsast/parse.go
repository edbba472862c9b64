package tsast

import (
	"context"
	"sync"

	sitter "github.com/alexaandru/go-tree-sitter-bare"
	"github.com/alexaandru/go-sitter-forest/typescript"

	"github.com/calumari/ts2mbt/internal/errors"
)

// fieldNames lists the grammar fields the transpiler reads. Other fields are
// not recorded on the converted nodes.
var fieldNames = []string{
	"name",
	"value",
	"body",
	"type",
	"parameters",
	"return_type",
	"type_parameters",
	"type_arguments",
	"constraint",
	"index_type",
	"declaration",
	"pattern",
	"object",
	"index",
}

var language = sync.OnceValue(func() *sitter.Language {
	return sitter.NewLanguage(typescript.GetLanguage())
})

var parserPool = sync.Pool{
	New: func() any {
		p := sitter.NewParser()
		p.SetLanguage(language())
		return p
	},
}

// Parse parses TypeScript source into an owned node tree. Syntax errors do
// not fail the parse: tree-sitter recovers and the count of ERROR nodes is
// reported on the File.
func Parse(ctx context.Context, path string, src []byte) (*File, error) {
	p, ok := parserPool.Get().(*sitter.Parser)
	if !ok {
		return nil, errors.New("tsast: unexpected parser pool entry")
	}
	defer parserPool.Put(p)

	tree, err := p.ParseString(ctx, nil, src)
	if err != nil {
		return nil, errors.Wrapf(errors.Mark(err, errors.ErrParse), "parse %s", path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, errors.Wrapf(errors.ErrParse, "parse %s: empty tree", path)
	}
	f := &File{Path: path, Source: src}
	b := builder{file: f, src: src}
	f.Root = b.build(root, nil, "")
	return f, nil
}

type spanKey struct {
	start, end int
	typ        string
}

type builder struct {
	file *File
	src  []byte
}

func (b *builder) build(sn sitter.Node, parent *Node, field string) *Node {
	n := &Node{
		typ:    sn.Type(),
		named:  sn.IsNamed(),
		start:  int(sn.StartByte()),
		end:    int(sn.EndByte()),
		field:  field,
		parent: parent,
		file:   b.file,
	}
	if n.start <= n.end && n.end <= len(b.src) {
		n.text = string(b.src[n.start:n.end])
	}
	n.kind = classify(n.typ, n.text, n.named)
	if n.kind == KindError {
		b.file.Errors++
	}

	fields := b.fieldsOf(sn)
	for i := range sn.ChildCount() {
		c := sn.Child(i)
		if c.IsNull() {
			continue
		}
		key := spanKey{int(c.StartByte()), int(c.EndByte()), c.Type()}
		n.children = append(n.children, b.build(c, n, fields[key]))
	}
	return n
}

// fieldsOf maps each field-held child of sn to its field name.
func (b *builder) fieldsOf(sn sitter.Node) map[spanKey]string {
	var out map[spanKey]string
	for _, name := range fieldNames {
		c := sn.ChildByFieldName(name)
		if c.IsNull() {
			continue
		}
		if out == nil {
			out = make(map[spanKey]string, 4)
		}
		key := spanKey{int(c.StartByte()), int(c.EndByte()), c.Type()}
		if _, taken := out[key]; !taken {
			out[key] = name
		}
	}
	return out
}

// Synthetic builds a node that is not backed by a parsed file. Its InSource
// is always false.
func Synthetic(kind Kind, text string, children ...*Node) *Node {
	n := &Node{kind: kind, text: text, named: true}
	for _, c := range children {
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Labeled sets the grammar field of a synthetic child and returns it.
func Labeled(field string, n *Node) *Node {
	n.field = field
	return n
}
