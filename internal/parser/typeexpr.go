package parser

import (
	"fmt"
	"strings"
)

// typeExpr is a parsed type expression: a named type with optional generic
// arguments, or a list of an element type, either possibly non-null.
type typeExpr struct {
	Name    string
	Args    []*typeExpr
	Elem    *typeExpr
	NonNull bool
}

// parseTypeExpr parses "[Paged<Product>!]!"-style expressions.
func parseTypeExpr(s string) (*typeExpr, error) {
	c := newCursor(s)
	t, err := c.typeExpr()
	if err != nil {
		return nil, err
	}
	c.skipSpace()
	if !c.eof() {
		return nil, fmt.Errorf("unexpected %q after type %q", c.rest(), t.String())
	}
	return t, nil
}

func (c *cursor) typeExpr() (*typeExpr, error) {
	c.skipSpace()
	t := &typeExpr{}
	switch {
	case c.peek() == '[':
		c.i++
		elem, err := c.typeExpr()
		if err != nil {
			return nil, err
		}
		c.skipSpace()
		if c.peek() != ']' {
			return nil, fmt.Errorf("unterminated list type in %q", c.s)
		}
		c.i++
		t.Elem = elem
	case isIdent(c.peek()):
		t.Name = c.ident()
		if c.peek() == '<' {
			c.i++
			for {
				arg, err := c.typeExpr()
				if err != nil {
					return nil, err
				}
				t.Args = append(t.Args, arg)
				c.skipSpace()
				if c.peek() == ',' {
					c.i++
					continue
				}
				if c.peek() != '>' {
					return nil, fmt.Errorf("unterminated generic argument list in %q", c.s)
				}
				c.i++
				break
			}
		}
	default:
		return nil, fmt.Errorf("expected type in %q", c.s)
	}
	save := c.i
	c.skipSpace()
	if c.peek() == '!' {
		c.i++
		t.NonNull = true
	} else {
		c.i = save
	}
	return t, nil
}

// String renders t canonically.
func (t *typeExpr) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *typeExpr) write(b *strings.Builder) {
	if t.Elem != nil {
		b.WriteByte('[')
		t.Elem.write(b)
		b.WriteByte(']')
	} else {
		b.WriteString(t.Name)
		if len(t.Args) > 0 {
			b.WriteByte('<')
			for i, a := range t.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				a.write(b)
			}
			b.WriteByte('>')
		}
	}
	if t.NonNull {
		b.WriteByte('!')
	}
}

// core returns the named type under any list and non-null wrappers.
func (t *typeExpr) core() *typeExpr {
	for t.Elem != nil {
		t = t.Elem
	}
	return t
}

// hasApplication reports whether t applies type arguments anywhere.
func (t *typeExpr) hasApplication() bool {
	if t.Elem != nil {
		return t.Elem.hasApplication()
	}
	return len(t.Args) > 0
}

// letters returns, in order of first use, the params that t references.
func (t *typeExpr) letters(params []string) []string {
	if len(params) == 0 {
		return nil
	}
	var out []string
	seen := map[string]bool{}
	var walk func(*typeExpr)
	walk = func(x *typeExpr) {
		if x.Elem != nil {
			walk(x.Elem)
			return
		}
		for _, p := range params {
			if x.Name == p && !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
		for _, a := range x.Args {
			walk(a)
		}
	}
	walk(t)
	return out
}

// substitute replaces generic parameter names by their bound expressions.
func (t *typeExpr) substitute(bind map[string]*typeExpr) *typeExpr {
	if t.Elem != nil {
		return &typeExpr{Elem: t.Elem.substitute(bind), NonNull: t.NonNull}
	}
	if b, ok := bind[t.Name]; ok && len(t.Args) == 0 {
		out := b.clone()
		out.NonNull = out.NonNull || t.NonNull
		return out
	}
	out := &typeExpr{Name: t.Name, NonNull: t.NonNull}
	for _, a := range t.Args {
		out.Args = append(out.Args, a.substitute(bind))
	}
	return out
}

func (t *typeExpr) clone() *typeExpr {
	out := &typeExpr{Name: t.Name, NonNull: t.NonNull}
	if t.Elem != nil {
		out.Elem = t.Elem.clone()
	}
	for _, a := range t.Args {
		out.Args = append(out.Args, a.clone())
	}
	return out
}

// IsGenericMatch reports whether expr is exactly one of letters, optionally
// wrapped in list and non-null markers ("T", "[T]", "[T!]!").
func IsGenericMatch(expr string, letters []string) bool {
	t, err := parseTypeExpr(strings.TrimSpace(expr))
	if err != nil {
		return false
	}
	c := t.core()
	if len(c.Args) > 0 {
		return false
	}
	for _, l := range letters {
		if c.Name == l {
			return true
		}
	}
	return false
}
