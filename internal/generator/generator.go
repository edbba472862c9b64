package generator

import (
	"strings"

	"go.uber.org/zap"

	"github.com/calumari/ts2mbt/internal/tsast"
)

// Resolver answers symbol questions the syntax tree alone cannot: which
// declaration a type name refers to and which members that type has.
// *tsast.Index implements it.
type Resolver interface {
	Lookup(name string) (*tsast.Node, bool)
	MemberNames(decl *tsast.Node) []string
}

// State records the declarations synthesized during one Transpile call.
// A registered name is never defined twice.
type State struct {
	enumNames  map[string]bool
	enums      []string
	enumText   strings.Builder
	aliasNames map[string]bool
	aliases    []string
	aliasText  strings.Builder
}

func newState() *State {
	return &State{enumNames: map[string]bool{}, aliasNames: map[string]bool{}}
}

func (s *State) hasEnum(name string) bool  { return s.enumNames[name] }
func (s *State) hasAlias(name string) bool { return s.aliasNames[name] }

func (s *State) addEnum(name, text string) {
	s.enumNames[name] = true
	s.enums = append(s.enums, name)
	s.enumText.WriteString(text)
}

func (s *State) addAlias(name, text string) {
	s.aliasNames[name] = true
	s.aliases = append(s.aliases, name)
	s.aliasText.WriteString(text)
}

// Enums returns the synthesized enum names in registration order.
func (s *State) Enums() []string { return append([]string{}, s.enums...) }

// Aliases returns the synthesized function alias names in registration order.
func (s *State) Aliases() []string { return append([]string{}, s.aliases...) }

// EnumText returns the rendered enum declarations.
func (s *State) EnumText() string { return s.enumText.String() }

// AliasText returns the rendered function alias declarations.
func (s *State) AliasText() string { return s.aliasText.String() }

// generator holds transient state while transforming one tree.
type generator struct {
	state    *State
	resolver Resolver
	mode     tsast.Mode
	log      *zap.SugaredLogger
}

// Option configures Transpile.
type Option func(*generator)

// WithMode selects how the declaration walk enumerates children.
func WithMode(m tsast.Mode) Option {
	return func(g *generator) { g.mode = m }
}

// WithLogger sets the logger receiving debug output about skipped constructs.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(g *generator) {
		if l != nil {
			g.log = l
		}
	}
}

// Transpile converts the declarations below root into MoonBit source. The
// result text is the synthesized function aliases, then the synthesized enums,
// then the walked declarations. A nil resolver resolves nothing.
func Transpile(root *tsast.Node, r Resolver, opts ...Option) Result {
	g := newGenerator(r, opts...)
	body := g.walk(root)
	return Result{
		Code:    g.state.AliasText() + g.state.EnumText() + body,
		Enums:   g.state.Enums(),
		Aliases: g.state.Aliases(),
	}
}

func newGenerator(r Resolver, opts ...Option) *generator {
	if r == nil {
		r = noResolver{}
	}
	g := &generator{
		state:    newState(),
		resolver: r,
		mode:     tsast.ModeNamed,
		log:      zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

type noResolver struct{}

func (noResolver) Lookup(string) (*tsast.Node, bool) { return nil, false }
func (noResolver) MemberNames(*tsast.Node) []string  { return nil }
