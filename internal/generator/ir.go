package generator

import (
	"io"

	"github.com/calumari/ts2mbt/internal/tsast"
)

// This file houses the template models and the per-interface member table
// shared by the transform phases (types -> members -> render).

// Config holds settings for a file-level generation run.
type Config struct {
	Inputs    []string   // .ts files or directories to scan
	OutputDir string     // directory receiving <name>.mbt files; empty writes to Stdout
	Mode      tsast.Mode // child enumeration mode for the declaration walk
	Check     bool       // compare against existing outputs instead of writing
	Stdout    io.Writer  // destination when OutputDir is empty
	Command   string     // full invocation command line, recorded in headers
	Version   string     // ts2mbt build version
}

// Result is the output of a single Transpile call.
type Result struct {
	Code    string   `json:"code"`
	Enums   []string `json:"enums"`
	Aliases []string `json:"aliases"`
}

// structModel is the template model for an interface rendered as a struct
// with its FFI shims.
type structModel struct {
	Name     string
	Exported bool
	Fields   []fieldModel
	Indexers []indexerModel
	Methods  []shimModel
}

type fieldModel struct {
	Name string
	Type string
}

// shimModel is one extern "js" method wrapper.
type shimModel struct {
	Struct string
	Name   string
	Params string // MoonBit parameter list including self
	Result string
	JS     string // JS arrow function body
}

// indexerModel describes numeric index access shims.
type indexerModel struct {
	Struct string
	Elem   string
}

type enumModel struct {
	Name     string
	Variants []variantModel
}

// variantModel is an enum case; Payload is empty for payload-less tags.
type variantModel struct {
	Tag     string
	Payload string
}

type aliasModel struct {
	Name     string
	Target   string
	Exported bool
}

type headerModel struct {
	Source  string
	Command string
	Version string
}

// memberKind distinguishes the entries of a memberTable.
type memberKind int

const (
	memberProperty memberKind = iota
	memberMethod
)

type member struct {
	kind  memberKind
	node  *tsast.Node
	subst map[string]string // bindings of an inherited member's type parameters
}

// memberTable is an insertion-ordered map of interface members. Re-setting a
// key replaces the member but keeps its original position, so an own member
// overrides an inherited one in place.
type memberTable struct {
	keys  []string
	byKey map[string]member
}

func newMemberTable() *memberTable {
	return &memberTable{byKey: map[string]member{}}
}

func (t *memberTable) set(key string, m member) {
	if _, ok := t.byKey[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.byKey[key] = m
}

func (t *memberTable) get(key string) (member, bool) {
	m, ok := t.byKey[key]
	return m, ok
}

// each visits members in first-insertion order.
func (t *memberTable) each(fn func(key string, m member)) {
	for _, k := range t.keys {
		fn(k, t.byKey[k])
	}
}

func (t *memberTable) len() int { return len(t.keys) }
