package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/calumari/ts2mbt/internal/tsast"
)

func transpile(t *testing.T, src string, opts ...Option) Result {
	t.Helper()
	res, err := TranspileSource(context.Background(), "input.ts", []byte(src), opts...)
	require.NoError(t, err)
	return res
}

func TestTranspile(t *testing.T) {
	t.Run("identical unions share one enum", func(t *testing.T) {
		res := transpile(t, "interface Box { a: Int | String; b: Int | String; }\n")
		assert.Equal(t, []string{"IntOrString"}, res.Enums)
		assert.Equal(t, `enum IntOrString {
  Int(Int)
  String(String)
}

struct Box {
  a : IntOrString
  b : IntOrString
}

extern "js" fn Box::new() -> Box =
  #|() => new Box()

`, res.Code)
	})

	t.Run("member order names the enum", func(t *testing.T) {
		res := transpile(t, "type A = String | Int;\ntype B = Int | String;\n")
		assert.Equal(t, []string{"StringOrInt", "IntOrString"}, res.Enums)
		assert.Contains(t, res.Code, "typealias A = StringOrInt\ntypealias B = IntOrString\n")
	})

	t.Run("duplicate union members keep the first", func(t *testing.T) {
		res := transpile(t, "type A = Int | String | Int;\n")
		assert.Equal(t, []string{"IntOrString"}, res.Enums)
	})

	t.Run("absent member collapses to an option", func(t *testing.T) {
		res := transpile(t, "type A = string | undefined;\ntype B = null | number;\ninterface C { x?: number; y?: boolean | undefined; }\n")
		assert.Empty(t, res.Enums)
		assert.Contains(t, res.Code, "typealias A = String?\n")
		assert.Contains(t, res.Code, "typealias B = Double?\n")
		assert.Contains(t, res.Code, "  x : Double?\n")
		assert.Contains(t, res.Code, "  y : Bool?\n")
	})

	t.Run("several literals with an absent member stay an enum", func(t *testing.T) {
		res := transpile(t, "type K = 'a' | 'b' | undefined;\ntype L = 'x' | 'y' | null;\n")
		assert.Equal(t, []string{"String_aOrString_bOrJson", "String_xOrString_yOrJson"}, res.Enums)
		assert.Contains(t, res.Code, "enum String_aOrString_bOrJson {\n  String_a\n  String_b\n  Json(Json)\n}\n")
		assert.Contains(t, res.Code, "typealias K = String_aOrString_bOrJson\n")
		assert.Contains(t, res.Code, "typealias L = String_xOrString_yOrJson\n")
	})

	t.Run("one literal with an absent member collapses", func(t *testing.T) {
		res := transpile(t, "type K = 'a' | undefined;\n")
		assert.Empty(t, res.Enums)
		assert.Equal(t, "typealias K = String?\n", res.Code)
	})

	t.Run("primitive mapping", func(t *testing.T) {
		res := transpile(t, `type A = boolean;
type B = number;
type C = string;
type D = unknown;
type E = any;
type F = void;
type G = string[];
type H = { a: string };
type I = readonly number[];
type J = (number);
type K = Person["name"];
type L = "literal";
type M = 42;
type N = true;
`)
		for _, line := range []string{
			"typealias A = Bool\n",
			"typealias B = Double\n",
			"typealias C = String\n",
			"typealias D = Json\n",
			"typealias E = String\n",
			"typealias F = Unit\n",
			"typealias G = Array[String]\n",
			"typealias H = Json\n",
			"typealias I = Array[Double]\n",
			"typealias J = (Double)\n",
			"typealias K = Person[String]\n",
			"typealias L = String\n",
			"typealias M = Double\n",
			"typealias N = Bool\n",
		} {
			assert.Contains(t, res.Code, line)
		}
	})

	t.Run("type references", func(t *testing.T) {
		res := transpile(t, "type A = Record<string, number[]>;\ntype B = Map<string, Person>;\ntype C = Promise<string>;\ntype D = person;\n")
		assert.Contains(t, res.Code, "typealias A = Map[String, Array[Double]]\n")
		assert.Contains(t, res.Code, "typealias B = Map[String, Person]\n")
		assert.Contains(t, res.Code, "typealias C = Promise[String]\n")
		assert.Contains(t, res.Code, "typealias D = Person\n")
	})

	t.Run("function types", func(t *testing.T) {
		res := transpile(t, "type F = (a: string, b?: number) => void;\ntype G = (() => void) | string;\n")
		assert.Contains(t, res.Code, "typealias F = (String, Double?) -> Unit\n")
		assert.Equal(t, []string{"Fn"}, res.Aliases)
		assert.Equal(t, []string{"FnOrString"}, res.Enums)
		assert.True(t, strings.HasPrefix(res.Code, "typealias Fn = () -> Unit\n\nenum FnOrString {\n  Fn(Fn)\n  String(String)\n}\n"))
	})

	t.Run("exported declarations are public", func(t *testing.T) {
		res := transpile(t, "export type Id = string;\nexport interface Empty {}\n")
		assert.Contains(t, res.Code, "pub(all) typealias Id = String\n")
		assert.Contains(t, res.Code, "pub(all) struct Empty {\n}\n")
	})

	t.Run("inherited field is overridden in place", func(t *testing.T) {
		res := transpile(t, `interface A { x: number; y: string; }
interface B extends A { x: string; z: boolean; }
`)
		assert.Contains(t, res.Code, "struct A {\n  x : Double\n  y : String\n}\n")
		assert.Contains(t, res.Code, "struct B {\n  x : String\n  y : String\n  z : Bool\n}\n")
	})

	t.Run("inheritance is transitive and base first", func(t *testing.T) {
		res := transpile(t, `interface C extends B { c: string; }
interface B extends A { b: string; }
interface A { a: string; }
`)
		assert.Contains(t, res.Code, "struct C {\n  a : String\n  b : String\n  c : String\n}\n")
	})

	t.Run("inheritance cycles terminate", func(t *testing.T) {
		res := transpile(t, "interface A extends B { a: string; }\ninterface B extends A { b: string; }\n")
		assert.Contains(t, res.Code, "struct A {\n  b : String\n  a : String\n}\n")
		assert.Contains(t, res.Code, "struct B {\n  a : String\n  b : String\n}\n")
	})

	t.Run("unresolved and non-interface bases are skipped", func(t *testing.T) {
		res := transpile(t, "type T = { t: string };\ninterface A extends T, Missing { a: string; }\n")
		assert.Contains(t, res.Code, "struct A {\n  a : String\n}\n")
	})

	t.Run("overloads get numeric suffixes", func(t *testing.T) {
		res := transpile(t, `interface Calc {
  add(a: number): number;
  add(a: number, b: number): number;
  add(a: string): string;
}
`)
		assert.Contains(t, res.Code, "extern \"js\" fn Calc::add(self : Calc, a : Double) -> Double =\n  #|(self, a) => self.add(a)\n")
		assert.Contains(t, res.Code, "extern \"js\" fn Calc::add2(self : Calc, a : Double, b : Double) -> Double =\n  #|(self, a, b) => self.add(a, b)\n")
		assert.Contains(t, res.Code, "extern \"js\" fn Calc::add3(self : Calc, a : String) -> String =\n  #|(self, a) => self.add(a)\n")
		assert.Contains(t, res.Code, "struct Calc {\n}\n")
	})

	t.Run("overload suffixes skip declared names", func(t *testing.T) {
		res := transpile(t, "interface I { foo(): void; foo(a: number): void; foo2(): void; }\n")
		assert.Equal(t, 1, strings.Count(res.Code, "fn I::foo2("))
		assert.Contains(t, res.Code, "extern \"js\" fn I::foo2(self : I) -> Unit =\n  #|(self) => self.foo2()\n")
		assert.Contains(t, res.Code, "extern \"js\" fn I::foo3(self : I, a : Double) -> Unit =\n  #|(self, a) => self.foo(a)\n")
	})

	t.Run("inherited generic members bind base type arguments", func(t *testing.T) {
		res := transpile(t, `interface Base<U> { y: U; get(i: number): U; }
interface Mid<V> extends Base<V[]> { m: V; }
interface Leaf extends Mid<number> { own: string; }
interface G<T> extends Base<T> { x: T; }
`)
		assert.Contains(t, res.Code, "struct Leaf {\n  y : Array[Double]\n  m : Double\n  own : String\n}\n")
		assert.Contains(t, res.Code, "extern \"js\" fn Leaf::get(self : Leaf, i : Double) -> Array[Double] =\n")
		assert.Contains(t, res.Code, "struct G {\n  y : T\n  x : T\n}\n")
	})

	t.Run("reserved words are escaped", func(t *testing.T) {
		res := transpile(t, "interface R { type: string; match(fn: string): void; }\n")
		assert.Contains(t, res.Code, "  _type : String\n")
		assert.Contains(t, res.Code, "fn R::_match(self : R, _fn : String) -> Unit =\n  #|(self, fn) => self.match(fn)\n")
	})

	t.Run("shape scenario", func(t *testing.T) {
		res := transpile(t, "interface Shape { area(): number; kind: \"circle\" | \"square\"; }\n")
		assert.Equal(t, `enum String_circleOrString_square {
  String_circle
  String_square
}

struct Shape {
  kind : String_circleOrString_square
}

extern "js" fn Shape::new() -> Shape =
  #|() => new Shape()

extern "js" fn Shape::area(self : Shape) -> Double =
  #|(self) => self.area()

`, res.Code)
	})

	t.Run("numeric index signatures get accessors", func(t *testing.T) {
		res := transpile(t, "interface List { [i: number]: string; length: number; }\ninterface Dict { [k: string]: number; }\n")
		assert.Contains(t, res.Code, "extern \"js\" fn List::op_get(self : List, index : Int) -> String =\n  #|(self, index) => self[index]\n")
		assert.Contains(t, res.Code, "extern \"js\" fn List::op_set(self : List, index : Int, value : String) -> Unit =\n")
		assert.NotContains(t, res.Code, "Dict::op_get")
		assert.Contains(t, res.Code, "struct Dict {\n}\n")
	})

	t.Run("keyof constraints synthesize a key enum", func(t *testing.T) {
		res := transpile(t, `interface Person { firstName: string; age: number; }
interface Getter<K extends keyof Person> {
  get(key: K): string;
  all(keys: K[]): void;
  pick<P extends keyof Person>(p: P): void;
}
`)
		assert.Equal(t, []string{"PersonKeys"}, res.Enums)
		assert.Contains(t, res.Code, "enum PersonKeys {\n  FirstName\n  Age\n}\n")
		assert.Contains(t, res.Code, "fn Getter::get(self : Getter, key : PersonKeys) -> String =")
		assert.Contains(t, res.Code, "fn Getter::all(self : Getter, keys : Array[PersonKeys]) -> Unit =")
		assert.Contains(t, res.Code, "fn Getter::pick(self : Getter, p : PersonKeys) -> Unit =")
	})

	t.Run("quoted member names", func(t *testing.T) {
		res := transpile(t, "interface Q { 'content-type': string; \"do-it\"(): void; }\n")
		assert.Contains(t, res.Code, "  content_minus_type : String\n")
		assert.Contains(t, res.Code, "fn Q::do_minus_it(self : Q) -> Unit =\n  #|(self) => self[\"do-it\"]()\n")
	})

	t.Run("rest parameters keep their spread", func(t *testing.T) {
		res := transpile(t, "interface Log { write(level: string, ...parts: string[]): void; }\n")
		assert.Contains(t, res.Code, "fn Log::write(self : Log, level : String, parts : Array[String]) -> Unit =\n  #|(self, level, ...parts) => self.write(level, ...parts)\n")
	})

	t.Run("missing annotations are implicit any", func(t *testing.T) {
		res := transpile(t, "interface Loose { value; call(x); }\n")
		assert.Contains(t, res.Code, "  value : String\n")
		assert.Contains(t, res.Code, "fn Loose::call(self : Loose, x : String) -> String =")
	})

	t.Run("variable statements emit nothing", func(t *testing.T) {
		res := transpile(t, "const a = 1;\nlet b: string = 'x';\nvar c;\n")
		assert.Equal(t, "", res.Code)
		assert.Empty(t, res.Enums)
		assert.Empty(t, res.Aliases)
	})

	t.Run("traversal modes agree", func(t *testing.T) {
		src := "export interface P { a: Int | String; f(x: number): void; }\ntype Q = P[];\n"
		named := transpile(t, src, WithMode(tsast.ModeNamed))
		all := transpile(t, src, WithMode(tsast.ModeAll))
		assert.Equal(t, named, all)
	})
}

func TestTranspileEmptyInputs(t *testing.T) {
	t.Run("nil tree", func(t *testing.T) {
		res := Transpile(nil, nil)
		assert.Equal(t, "", res.Code)
		assert.Empty(t, res.Enums)
	})

	t.Run("alias without a source name changes nothing", func(t *testing.T) {
		g := newGenerator(nil)
		decl := tsast.Synthetic(tsast.KindTypeAliasDeclaration, "",
			tsast.Labeled("name", tsast.Synthetic(tsast.KindTypeIdentifier, "Ghost")),
			tsast.Labeled("value", tsast.Synthetic(tsast.KindUnionType, "",
				tsast.Synthetic(tsast.KindTypeIdentifier, "A"),
				tsast.Synthetic(tsast.KindTypeIdentifier, "B"),
			)),
		)
		assert.Equal(t, "", g.typeAlias(decl))
		assert.Empty(t, g.state.Enums())
		assert.Equal(t, "", g.state.EnumText())
	})

	t.Run("unknown synthetic nodes render empty", func(t *testing.T) {
		g := newGenerator(nil)
		assert.Equal(t, "", g.transformType(tsast.Synthetic(tsast.KindConditionalType, "A extends B ? C : D")))
		assert.Equal(t, "", g.transformType(nil))
	})
}

func TestTemplateLiteralEnum(t *testing.T) {
	g := newGenerator(nil)
	value := tsast.Labeled("value", tsast.Synthetic(tsast.KindTemplateLiteralType, "`hello ${string}`"))
	tsast.Synthetic(tsast.KindTypeAliasDeclaration, "",
		tsast.Labeled("name", tsast.Synthetic(tsast.KindTypeIdentifier, "greeting")),
		value,
	)
	assert.Equal(t, "Greeting", g.transformType(value))
	assert.Equal(t, "Greeting", g.transformType(value))
	assert.Equal(t, []string{"Greeting"}, g.state.Enums())
	assert.Equal(t, "enum Greeting {\n  String(String)\n}\n\n", g.state.EnumText())

	orphan := tsast.Synthetic(tsast.KindTemplateLiteralType, "`x${string}`")
	assert.Equal(t, "TemplateLiteral", g.transformType(orphan))
}

func TestTranspileLogsSkippedMembers(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	transpile(t, "interface Dict { [k: string]: number; }\n", WithLogger(zap.New(core).Sugar()))
	assert.Equal(t, 1, logs.FilterMessage("dropping index signature").Len())
}

func TestTranspileSourceReportsSyntaxErrors(t *testing.T) {
	res, err := TranspileSource(context.Background(), "bad.ts", []byte("}}}\ntype Ok = string;\n"))
	require.Error(t, err)
	assert.True(t, IsSyntaxError(err))
	assert.Contains(t, res.Code, "typealias Ok = String\n")
}
