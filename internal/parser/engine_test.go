package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/sdlgen/pkg/model"
	"github.com/cmmoran/sdlgen/pkg/sdlerr"
)

const pagedSchema = `type Paged<T> { items: [T] }
type Product { id: ID }
type Query { products: Paged<Product> }`

// flat collapses all whitespace runs so rendered blocks compare on one line.
func flat(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func find(t *testing.T, decls []*model.Declaration, name string) *model.Declaration {
	t.Helper()
	for _, d := range decls {
		if d.Name == name && !d.IsExtend {
			return d
		}
	}
	t.Fatalf("declaration %q not found", name)
	return nil
}

func names(props []*model.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.Name
	}
	return out
}

func TestTranspileEndToEnd(t *testing.T) {
	got, err := NewEngine(Config{}).Transpile(pagedSchema)
	require.NoError(t, err)

	want := "type Product {\n  id: ID\n}\n\ntype Query {\n  products: PagedProduct\n}\n\ntype PagedProduct {\n  items: [Product]\n}\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Transpile() mismatch (-want +got):\n%s", diff)
	}
	require.Contains(t, flat(got), "type Product { id: ID }")
	require.Contains(t, flat(got), "type Query { products: PagedProduct }")
	require.Contains(t, flat(got), "type PagedProduct { items: [Product] }")
	require.NotContains(t, got, "Paged<T>")
}

func TestTranspileIdempotent(ttt *testing.T) {
	schemas := map[string]string{
		"generics": pagedSchema,
		"inheritance": `interface Node { id: ID! }
abstract Entity { id: ID! createdAt: String }
type User inherits Entity implements Node { name: String }`,
		"everything": `# scalars
scalar Date
enum Role { ADMIN USER }
union Actor = User | Bot
type User { id: ID! role: Role = USER }
type Bot { id: ID! }
extend type User { born: Date }`,
	}
	e := NewEngine(Config{})
	for name, s := range schemas {
		ttt.Run(name, func(t *testing.T) {
			once, err := e.Transpile(s)
			require.NoError(t, err)
			twice, err := e.Transpile(once)
			require.NoError(t, err)
			require.Equal(t, once, twice)
		})
	}
}

func TestInheritanceMerge(t *testing.T) {
	decls, err := NewEngine(Config{}).SchemaAST(`type A { p1: Int p2: Int }
type B inherits A { p3: Int }`)
	require.NoError(t, err)

	b := find(t, decls, "B")
	require.Equal(t, []string{"p1", "p2", "p3"}, names(b.Properties))
	require.Equal(t, []string{"p3"}, names(b.OriginalProperties))
}

func TestInheritanceRules(ttt *testing.T) {
	tests := []struct {
		name   string
		schema string
		decl   string
		want   []string
		text   string
	}{
		{
			name:   "multiple parents in list order",
			schema: "type A { a: Int }\ntype B { b: Int }\ntype C inherits A, B { c: Int }",
			decl:   "C",
			want:   []string{"a", "b", "c"},
		},
		{
			name:   "transitive",
			schema: "type A { a: Int }\ntype B inherits A { b: Int }\ntype C inherits B { c: Int }",
			decl:   "C",
			want:   []string{"a", "b", "c"},
		},
		{
			name:   "type inherits abstract which is not emitted",
			schema: "abstract Entity { id: ID! }\ntype User inherits Entity { name: String }",
			decl:   "User",
			want:   []string{"id", "name"},
			text:   "type User {\n  id: ID!\n  name: String\n}\n",
		},
		{
			name:   "type inherits interface",
			schema: "interface Named { name: String }\ntype User inherits Named { id: ID }",
			decl:   "User",
			want:   []string{"name", "id"},
		},
		{
			name:   "enum inherits enum",
			schema: "enum Base { A B }\nenum More inherits Base { C }",
			decl:   "More",
			want:   []string{"A", "B", "C"},
		},
		{
			name:   "input inherits input",
			schema: "input Page { first: Int }\ninput Filter inherits Page { q: String }",
			decl:   "Filter",
			want:   []string{"first", "q"},
		},
		{
			name:   "redeclared property is kept twice",
			schema: "type A { id: ID }\ntype B inherits A { id: ID! }",
			decl:   "B",
			want:   []string{"id", "id"},
		},
		{
			name:   "extend fragment is not a parent",
			schema: "type A { a: Int }\nextend type A { x: Int }\ntype B inherits A { b: Int }",
			decl:   "B",
			want:   []string{"a", "b"},
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			e := NewEngine(Config{})
			decls, err := e.SchemaAST(tt.schema)
			require.NoError(t, err)
			require.Equal(t, tt.want, names(find(t, decls, tt.decl).Properties))
			if tt.text != "" {
				got, err := e.Transpile(tt.schema)
				require.NoError(t, err)
				require.Equal(t, tt.text, got)
			}
		})
	}
}

func TestInterfaceClosure(t *testing.T) {
	decls, err := NewEngine(Config{}).SchemaAST(`interface I1 { id: ID }
interface I2 implements I1 { id: ID }
interface I3 { x: Int }
type T implements I2 & I3 & I1 { id: ID x: Int }`)
	require.NoError(t, err)

	require.Equal(t, []string{"I1"}, find(t, decls, "I2").Implements)
	require.Equal(t, []string{"I2", "I1", "I3"}, find(t, decls, "T").Implements)
}

func TestGenericInstantiation(t *testing.T) {
	var calls int
	alias := func(base string, args []string) string {
		calls++
		return DefaultAlias(base, args)
	}
	decls, err := NewEngine(Config{AliasFunc: alias}).SchemaAST(`type Paged<T> { items: [T] total: Int }
type Product { id: ID }
type Query {
  a: Paged<Product>
  b: Paged<Product>!
  c(filter: Paged<Product>): Int
}`)
	require.NoError(t, err)

	var instances []*model.Declaration
	for _, d := range decls {
		if d.InstanceOf != "" {
			instances = append(instances, d)
		}
	}
	require.Len(t, instances, 1)
	inst := instances[0]
	require.Equal(t, "PagedProduct", inst.Name)
	require.Equal(t, "Paged", inst.InstanceOf)
	require.Equal(t, []string{"Product"}, inst.TypeArguments)
	require.Equal(t, "[Product]", inst.Properties[0].Result.ResolvedName)
	require.Equal(t, "Int", inst.Properties[1].Result.ResolvedName)
	require.Equal(t, 1, calls, "alias names are memoized per type expression")

	q := find(t, decls, "Query")
	require.Equal(t, "PagedProduct", q.Properties[0].Result.ResolvedName)
	require.Equal(t, "PagedProduct!", q.Properties[1].Result.ResolvedName)
	require.Equal(t, "filter: PagedProduct", q.Properties[2].Parameters)

	ref := q.Properties[0].Result
	require.True(t, ref.IsGeneric)
	require.False(t, ref.DependsOnParentGenerics)
	require.Equal(t, "Paged<Product>", ref.OriginName)

	tmpl := find(t, decls, "Paged<T>")
	require.Equal(t, []string{"T"}, tmpl.GenericParameters)
	items := tmpl.Properties[0].Result
	require.True(t, items.IsGeneric)
	require.True(t, items.DependsOnParentGenerics)
	require.Equal(t, []string{"T"}, items.GenericParentLetters)
}

func TestGenericShapes(ttt *testing.T) {
	tests := []struct {
		name   string
		schema string
		alias  model.AliasFunc
		want   string
	}{
		{
			name: "nested arguments instantiate innermost first",
			schema: `type Box<T> { value: T }
type Paged<T> { items: [T] }
type Query { x: Paged<Box<Product>> }`,
			want: "type Query { x: PagedBoxProduct } type BoxProduct { value: Product } type PagedBoxProduct { items: [BoxProduct] }",
		},
		{
			name: "parent dependent generic field",
			schema: `type Paged<T> { items: [T] }
type Wrapper<T> { page: Paged<T>! }
type Query { w: Wrapper<User> }`,
			want: "type Query { w: WrapperUser } type WrapperUser { page: PagedUser! } type PagedUser { items: [User] }",
		},
		{
			name: "two parameters",
			schema: `type Pair<K, V> { key: K value: [V!] }
type Query { p: Pair<String, Int> }`,
			want: "type Query { p: PairStringInt } type PairStringInt { key: String value: [Int!] }",
		},
		{
			name: "self referencing template terminates",
			schema: `type Node<T> { value: T children: [Node<T>] }
type Query { tree: Node<String> }`,
			want: "type Query { tree: NodeString } type NodeString { value: String children: [NodeString] }",
		},
		{
			name: "inherit an instantiation",
			schema: `type Paged<T> { items: [T] }
type Products inherits Paged<Product> { total: Int }`,
			want: "type Products { items: [Product] total: Int } type PagedProduct { items: [Product] }",
		},
		{
			name: "template inherits template",
			schema: `abstract Base<T> { id: T }
type Paged<T> inherits Base<T> { items: [T] }
type Query { p: Paged<Int> }`,
			want: "type Query { p: PagedInt } type PagedInt { id: Int items: [Int] }",
		},
		{
			name: "generic input in argument position",
			schema: `input Filter<T> { eq: T }
type Query { users(where: Filter<ID>): [User] }`,
			want: "type Query { users(where: FilterID): [User] } input FilterID { eq: ID }",
		},
		{
			name: "custom alias",
			schema: `type Paged<T> { items: [T] }
type Query { p: Paged<[Product!]> }`,
			alias: func(base string, args []string) string {
				return base + "Of" + StripDecoration(strings.Join(args, "And"))
			},
			want: "type Query { p: PagedOfProduct } type PagedOfProduct { items: [[Product!]] }",
		},
		{
			name: "template directive and comments carry over",
			schema: `# a page
type Paged<T> @key(fields: "id") { items: [T] }
type Query { p: Paged<A> }`,
			want: `type Query { p: PagedA } # a page type PagedA @key(fields: "id") { items: [A] }`,
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			got, err := NewEngine(Config{AliasFunc: tt.alias}).Transpile(tt.schema)
			require.NoError(t, err)
			require.Equal(t, tt.want, flat(got))
		})
	}
}

func TestResolutionErrors(ttt *testing.T) {
	tests := []struct {
		name   string
		schema string
		want   error
		path   []string
	}{
		{
			name:   "missing ancestor",
			schema: "type B inherits A { b: Int }",
			want:   sdlerr.ErrMissingAncestor,
		},
		{
			name:   "input cannot inherit type",
			schema: "type A { a: Int }\ninput B inherits A { b: Int }",
			want:   sdlerr.ErrInvalidInheritance,
		},
		{
			name:   "type cannot inherit input",
			schema: "input A { a: Int }\ntype B inherits A { b: Int }",
			want:   sdlerr.ErrInvalidInheritance,
		},
		{
			name:   "inheritance cycle",
			schema: "type A inherits B { a: Int }\ntype B inherits A { b: Int }",
			want:   sdlerr.ErrCyclicInheritance,
			path:   []string{"A", "B", "A"},
		},
		{
			name:   "self inheritance",
			schema: "type A inherits A { a: Int }",
			want:   sdlerr.ErrCyclicInheritance,
			path:   []string{"A", "A"},
		},
		{
			name:   "missing interface",
			schema: "type A implements Node { a: Int }",
			want:   sdlerr.ErrMissingInterface,
		},
		{
			name:   "not an interface",
			schema: "type Node { id: ID }\ntype A implements Node { a: Int }",
			want:   sdlerr.ErrNotAnInterface,
		},
		{
			name:   "interface cycle",
			schema: "interface I1 implements I2 { id: ID }\ninterface I2 implements I1 { id: ID }",
			want:   sdlerr.ErrCyclicInterface,
		},
		{
			name:   "missing template",
			schema: "type Query { p: Paged<Product> }",
			want:   sdlerr.ErrMissingGenericTemplate,
		},
		{
			name:   "not generic",
			schema: "type Paged { items: [Int] }\ntype Query { p: Paged<Product> }",
			want:   sdlerr.ErrNotGeneric,
		},
		{
			name:   "arity mismatch",
			schema: "type Pair<K, V> { key: K value: V }\ntype Query { p: Pair<String> }",
			want:   sdlerr.ErrGenericArity,
		},
		{
			name:   "bare template as ancestor",
			schema: "type Paged<T> { items: [T] }\ntype X inherits Paged { n: Int }",
			want:   sdlerr.ErrGenericArity,
		},
		{
			name:   "ancestor arguments missing one",
			schema: "type Pair<K, V> { key: K value: V }\ntype X inherits Pair<String> { n: Int }",
			want:   sdlerr.ErrGenericArity,
		},
		{
			name:   "alias collides with a declared type",
			schema: "type Paged<T> { items: [T] }\ntype PagedProduct { x: Int }\ntype Query { p: Paged<Product> }",
			want:   sdlerr.ErrGenericTypeMismatch,
		},
		{
			name: "instantiation never reaches a fixed point",
			schema: `type Box<T> { value: T }
type Chain<T> { next: Chain<Box<T>> }
type Query { c: Chain<Int> }`,
			want: sdlerr.ErrCyclicGeneric,
		},
		{
			name:   "arguments on implemented interface",
			schema: "interface Node<T> { id: T }\ntype A implements Node<ID> { id: ID }",
			want:   sdlerr.ErrSyntax,
		},
		{
			name:   "missing name",
			schema: "type { id: ID }",
			want:   sdlerr.ErrSyntax,
		},
		{
			name:   "union without members",
			schema: "union U =",
			want:   sdlerr.ErrSyntax,
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			e := NewEngine(Config{})
			_, err := e.Transpile(tt.schema)
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.want), "got %v", err)

			var se *sdlerr.Error
			require.True(t, errors.As(err, &se))
			require.NotEmpty(t, se.Kind)
			if tt.path != nil {
				require.Equal(t, tt.path, se.Path)
			}

			// a failed call leaves nothing behind for the next one
			got, err := e.Transpile(pagedSchema)
			require.NoError(t, err)
			require.Contains(t, got, "type PagedProduct")
		})
	}
}

func TestCommentPreservation(t *testing.T) {
	schema := `# Foo is the root type.
# It has one field.
type Foo {
  # the identifier
  id: ID # never empty
  "display name"
  name(locale: String = "en"): String @deprecated(reason: "use title")
}

# not attached

type Bar { x: Int }`
	got, err := NewEngine(Config{}).Transpile(schema)
	require.NoError(t, err)

	want := `# Foo is the root type.
# It has one field.
type Foo {
  # the identifier
  id: ID # never empty
  "display name"
  name(locale: String = "en"): String @deprecated(reason: "use title")
}

type Bar {
  x: Int
}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Transpile() mismatch (-want +got):\n%s", diff)
	}
}

func TestCommentPlacement(ttt *testing.T) {
	tests := []struct {
		name   string
		schema string
		want   string
	}{
		{
			name:   "between description and header",
			schema: "\"desc\"\n# c\ntype Foo { id: ID }",
			want:   "\"desc\"\n# c\ntype Foo {\n  id: ID\n}\n",
		},
		{
			name:   "above and below description",
			schema: "# a\n\"\"\"\nFoo\n\"\"\"\n# b\ntype Foo { id: ID }",
			want:   "\"\"\"\nFoo\n\"\"\"\n# a\n# b\ntype Foo {\n  id: ID\n}\n",
		},
		{
			name:   "inside a header",
			schema: "type Foo # the root\n{ id: ID }",
			want:   "type Foo {\n  id: ID\n}\n",
		},
		{
			name:   "after the last property",
			schema: "type Foo {\n  id: ID\n  # trailing\n}",
			want:   "type Foo {\n  id: ID\n  # trailing\n}\n",
		},
		{
			name:   "only comments in a block",
			schema: "type Foo {\n  # nothing yet\n}",
			want:   "type Foo {\n  # nothing yet\n}\n",
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			e := NewEngine(Config{})
			got, err := e.Transpile(tt.schema)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Transpile() mismatch (-want +got):\n%s", diff)
			}

			again, err := e.Transpile(got)
			require.NoError(t, err)
			require.Equal(t, got, again)
		})
	}
}

func TestExtendFragments(t *testing.T) {
	schema := "type Foo { a: Int }\n# more of Foo\nextend type Foo implements Node { b: Int }\ninterface Node { b: Int }"
	e := NewEngine(Config{})
	got, err := e.Transpile(schema)
	require.NoError(t, err)
	require.Equal(t, "type Foo { a: Int } # more of Foo extend type Foo implements Node { b: Int } interface Node { b: Int }", flat(got))

	decls, err := e.SchemaAST(schema)
	require.NoError(t, err)
	var fragments int
	for _, d := range decls {
		if d.BaseName() == "Foo" {
			fragments++
		}
	}
	require.Equal(t, 2, fragments)
}

func TestSchemaShapes(ttt *testing.T) {
	tests := []struct {
		name   string
		schema string
		want   string
	}{
		{
			name:   "scalar union enum",
			schema: "scalar Date @specifiedBy(url: \"https://example.com\")\nunion Actor @tag =\n  | User\n  | Bot\nenum Role { ADMIN, USER @deprecated }",
			want:   "scalar Date @specifiedBy(url: \"https://example.com\")\n\nunion Actor @tag = User | Bot\n\nenum Role {\n  ADMIN\n  USER @deprecated\n}\n",
		},
		{
			name:   "directive definitions lead",
			schema: "type Query { me: User @auth }\ndirective @auth(role: String = \"user\") on FIELD_DEFINITION\nschema { query: Query }",
			want:   "directive @auth(role: String = \"user\") on FIELD_DEFINITION\n\ntype Query {\n  me: User @auth\n}\n\nschema {\n  query: Query\n}\n",
		},
		{
			name:   "descriptions",
			schema: "\"\"\"\nA user.\n\"\"\"\ntype User {\n  \"the id\" id: ID!\n}",
			want:   "\"\"\"\nA user.\n\"\"\"\ntype User {\n  \"the id\"\n  id: ID!\n}\n",
		},
		{
			name:   "empty",
			schema: "  \n# nothing\n",
			want:   "",
		},
	}
	for _, tt := range tests {
		ttt.Run(tt.name, func(t *testing.T) {
			got, err := NewEngine(Config{}).Transpile(tt.schema)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Transpile() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOmit(t *testing.T) {
	e := NewEngine(Config{Omit: func(d *model.Declaration) bool {
		return d.BaseName() == "Product" || d.InstanceOf == "Paged"
	}})
	got, err := e.Transpile(pagedSchema)
	require.NoError(t, err)
	require.Equal(t, "type Query { products: PagedProduct }", flat(got))

	decls, err := e.SchemaAST(pagedSchema)
	require.NoError(t, err)
	require.Len(t, decls, 4)
}
