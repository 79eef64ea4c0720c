package parser

import (
	"errors"
	"fmt"
	"strings"

	imodel "github.com/cmmoran/sdlgen/internal/model"
	"github.com/cmmoran/sdlgen/pkg/model"
	"github.com/cmmoran/sdlgen/pkg/sdlerr"
)

// parseBit turns a raw fragment into a Declaration.
func (r *resolution) parseBit(bit *imodel.RawBit) (*model.Declaration, error) {
	d := &model.Declaration{
		Kind:        bit.Kind,
		IsExtend:    bit.IsExtend,
		Description: bit.Description,
		Line:        bit.Line,
	}
	fail := func(err error) error {
		return sdlerr.New(sdlerr.Syntax, string(bit.Kind), bit.Header, err.Error()).WithLine(bit.Line)
	}

	var err error
	switch bit.Kind {
	case model.KindSchema:
		d.Directive = bit.Header
	case model.KindDirective:
		if d.Name = headerName(bit.Kind, bit.Header); d.Name == "" {
			return nil, fail(errors.New("missing directive name"))
		}
		d.Definition = "directive " + bit.Header
		return d, nil
	case model.KindScalar:
		err = parseScalarHeader(d, bit.Header)
	case model.KindUnion:
		err = parseUnionHeader(d, bit.Header)
	default:
		err = parseHeader(d, bit.Header)
	}
	if err != nil {
		return nil, fail(err)
	}
	if err = r.parseBody(d, bit.BodyLines); err != nil {
		return nil, fail(err)
	}
	return d, nil
}

// parseHeader reads "Name<T> inherits A, B implements I & J @dir".
func parseHeader(d *model.Declaration, header string) error {
	c := newCursor(header)
	c.skipSpace()
	if d.Name = c.ident(); d.Name == "" {
		return errors.New("missing declaration name")
	}
	if c.peek() == '<' {
		list, ok := c.balanced('<', '>')
		if !ok {
			return errors.New("unterminated generic parameter list")
		}
		for _, p := range strings.Split(list[1:len(list)-1], ",") {
			p = strings.TrimSpace(p)
			if p == "" || newCursor(p).ident() != p {
				return fmt.Errorf("invalid generic parameter %q", p)
			}
			d.GenericParameters = append(d.GenericParameters, p)
		}
		d.Name += "<" + strings.Join(d.GenericParameters, ", ") + ">"
	}
	for {
		c.skipSpace()
		if c.eof() {
			return nil
		}
		if c.peek() == '@' {
			d.Directive = strings.TrimSpace(c.rest())
			return nil
		}
		w := c.ident()
		switch w {
		case "inherits":
			names, err := c.nameList(true)
			if err != nil {
				return err
			}
			d.Inherits = append(d.Inherits, names...)
		case "implements":
			names, err := c.nameList(false)
			if err != nil {
				return err
			}
			d.Implements = append(d.Implements, names...)
		case "":
			return fmt.Errorf("unexpected %q", c.rest())
		default:
			return fmt.Errorf("unexpected %q", w)
		}
	}
}

// nameList reads names separated by commas, ampersands or spaces, up to a
// directive, the next header keyword or the end of the header.
func (c *cursor) nameList(generic bool) ([]string, error) {
	var out []string
	for {
		c.skipSpace()
		switch c.peek() {
		case ',', '&':
			c.i++
			continue
		case 0, '@':
			return out, checkList(out)
		}
		save := c.i
		w := c.ident()
		if w == "" {
			return nil, fmt.Errorf("unexpected %q", c.rest())
		}
		if w == "inherits" || w == "implements" {
			c.i = save
			return out, checkList(out)
		}
		if c.peek() == '<' {
			if !generic {
				return nil, fmt.Errorf("type arguments are not supported on implemented interface %q", w)
			}
			args, ok := c.balanced('<', '>')
			if !ok {
				return nil, fmt.Errorf("unterminated generic argument list after %q", w)
			}
			w += args
		}
		out = append(out, w)
	}
}

func checkList(names []string) error {
	if len(names) == 0 {
		return errors.New("empty name list")
	}
	return nil
}

func parseScalarHeader(d *model.Declaration, header string) error {
	c := newCursor(header)
	c.skipSpace()
	if d.Name = c.ident(); d.Name == "" {
		return errors.New("missing scalar name")
	}
	c.skipSpace()
	if !c.eof() && c.peek() != '@' {
		return fmt.Errorf("unexpected %q", c.rest())
	}
	d.Directive = strings.TrimSpace(c.rest())
	return nil
}

// parseUnionHeader reads "Name @dir = A | B".
func parseUnionHeader(d *model.Declaration, header string) error {
	c := newCursor(header)
	c.skipSpace()
	if d.Name = c.ident(); d.Name == "" {
		return errors.New("missing union name")
	}
	var dirs []string
	for {
		c.skipSpace()
		switch c.peek() {
		case 0:
			d.Directive = strings.Join(dirs, " ")
			return nil
		case '@':
			start := c.i
			c.i++
			c.ident()
			if c.peek() == '(' {
				if _, ok := c.balanced('(', ')'); !ok {
					return errors.New("unterminated directive arguments")
				}
			}
			dirs = append(dirs, c.s[start:c.i])
			continue
		case '=':
			c.i++
		default:
			return fmt.Errorf("unexpected %q", c.rest())
		}
		break
	}
	d.Directive = strings.Join(dirs, " ")
	for _, m := range strings.Split(c.rest(), "|") {
		if m = strings.TrimSpace(m); m != "" {
			d.Members = append(d.Members, m)
		}
	}
	if len(d.Members) == 0 {
		return errors.New("union has no members")
	}
	return nil
}

// propertyItem is one property as cut out of a body line.
type propertyItem struct {
	description string
	name        string
	params      string
	typ         string
	expr        *typeExpr
	suffix      string
}

// parseBody classifies body lines into comments and properties. Comment
// lines become the leading comment of the next property, or the trailing
// comment of the block when no property follows.
func (r *resolution) parseBody(d *model.Declaration, lines []string) error {
	var (
		pending []string
		desc    string
	)
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			pending = append(pending, line)
			continue
		}
		items, err := parseProperties(line)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.name == "" {
				desc = it.description
				continue
			}
			p := &model.Property{
				Name:        it.name,
				Description: it.description,
			}
			if p.Description == "" {
				p.Description = desc
			}
			desc = ""
			if len(pending) > 0 {
				p.Comments = strings.Join(pending, "\n")
				pending = nil
			}
			if it.params != "" {
				if p.Arguments, err = r.parseArguments(it.params, d.GenericParameters); err != nil {
					return fmt.Errorf("property %q: %w", it.name, err)
				}
				p.Parameters = renderArguments(p.Arguments)
			}
			switch {
			case it.expr != nil:
				p.Result = r.reference(it.typ, it.expr, d.GenericParameters, it.suffix)
			case it.suffix != "":
				p.Result = &model.TypeReference{Directive: it.suffix}
			}
			d.Properties = append(d.Properties, p)
		}
	}
	d.TrailingComments = strings.Join(pending, "\n")
	return nil
}

// parseProperties splits a logical body line into properties. Several may
// share a line ("{ id: ID name: String }", "A, B, C").
func parseProperties(line string) ([]propertyItem, error) {
	c := newCursor(line)
	var items []propertyItem
	for {
		c.skipSeparators()
		if c.eof() {
			return items, nil
		}
		if c.peek() == '#' {
			comment := strings.TrimSpace(c.rest())
			if n := len(items); n > 0 {
				items[n-1].suffix = strings.TrimSpace(items[n-1].suffix + " " + comment)
			}
			return items, nil
		}
		var it propertyItem
		if c.peek() == '"' {
			it.description = c.str()
			c.skipSpace()
			if c.eof() {
				return append(items, it), nil
			}
		}
		if it.name = c.ident(); it.name == "" {
			return nil, fmt.Errorf("unexpected %q", c.rest())
		}
		c.skipSpace()
		if c.peek() == '(' {
			p, ok := c.balanced('(', ')')
			if !ok {
				return nil, fmt.Errorf("unterminated arguments of %q", it.name)
			}
			it.params = strings.TrimSpace(p[1 : len(p)-1])
			c.skipSpace()
		}
		if c.peek() == ':' {
			c.i++
			c.skipSpace()
			start := c.i
			t, err := c.typeExpr()
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", it.name, err)
			}
			it.expr = t
			it.typ = strings.TrimSpace(c.s[start:c.i])
		}
		it.suffix = c.suffix()
		items = append(items, it)
	}
}

// parseArguments parses the inside of a field's argument list. Argument
// types go through the same reference resolution as results.
func (r *resolution) parseArguments(list string, params []string) ([]*model.Parameter, error) {
	c := newCursor(list)
	var out []*model.Parameter
	for {
		c.skipSeparators()
		if c.eof() {
			return out, nil
		}
		if c.peek() == '#' {
			if n := strings.IndexByte(c.rest(), '\n'); n >= 0 {
				c.i += n
				continue
			}
			return out, nil
		}
		arg := &model.Parameter{}
		if c.peek() == '"' {
			arg.Description = c.str()
			c.skipSpace()
		}
		if arg.Name = c.ident(); arg.Name == "" {
			return nil, fmt.Errorf("unexpected %q in arguments", c.rest())
		}
		c.skipSpace()
		if c.peek() != ':' {
			return nil, fmt.Errorf("argument %q has no type", arg.Name)
		}
		c.i++
		c.skipSpace()
		start := c.i
		t, err := c.typeExpr()
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", arg.Name, err)
		}
		arg.Type = r.reference(strings.TrimSpace(c.s[start:c.i]), t, params, c.suffix())
		out = append(out, arg)
	}
}

func renderArguments(args []*model.Parameter) string {
	parts := make([]string, len(args))
	for i, a := range args {
		s := a.Name + ": " + a.Type.String()
		if a.Description != "" {
			s = a.Description + " " + s
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}
