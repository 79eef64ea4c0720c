package parser

import "strings"

// cursor walks a single header, body line or type expression.
type cursor struct {
	s string
	i int
}

func newCursor(s string) *cursor {
	return &cursor{s: s}
}

func (c *cursor) eof() bool {
	return c.i >= len(c.s)
}

func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.s[c.i]
}

func (c *cursor) rest() string {
	if c.eof() {
		return ""
	}
	return c.s[c.i:]
}

func (c *cursor) skipSpace() {
	for !c.eof() && isSpace(c.s[c.i]) {
		c.i++
	}
}

// skipSeparators skips whitespace and the optional commas between items.
func (c *cursor) skipSeparators() {
	for !c.eof() && (isSpace(c.s[c.i]) || c.s[c.i] == ',') {
		c.i++
	}
}

func (c *cursor) ident() string {
	start := c.i
	for !c.eof() && isIdent(c.s[c.i]) {
		c.i++
	}
	return c.s[start:c.i]
}

// str reads a "..." or """...""" literal starting at the cursor.
func (c *cursor) str() string {
	n := scanString(c.s, c.i)
	out := c.s[c.i:n]
	c.i = n
	return out
}

// balanced reads from an opening delimiter to its match, skipping string
// literals, and returns the text including both delimiters. ok is false
// when the input ends first.
func (c *cursor) balanced(open, close byte) (string, bool) {
	start := c.i
	depth := 0
	for !c.eof() {
		ch := c.s[c.i]
		switch {
		case ch == '"':
			c.i = scanString(c.s, c.i)
			continue
		case ch == open:
			depth++
		case ch == close:
			depth--
			if depth == 0 {
				c.i++
				return c.s[start:c.i], true
			}
		}
		c.i++
	}
	return c.s[start:], false
}

// value reads a default value: a string, list, object or bare token.
func (c *cursor) value() string {
	switch c.peek() {
	case '"':
		return c.str()
	case '[':
		v, _ := c.balanced('[', ']')
		return v
	case '{':
		v, _ := c.balanced('{', '}')
		return v
	}
	start := c.i
	for !c.eof() {
		ch := c.s[c.i]
		if isSpace(ch) || ch == ',' || ch == ')' || ch == '@' || ch == '#' {
			break
		}
		c.i++
	}
	return c.s[start:c.i]
}

// suffix reads any default value and directives following a type.
func (c *cursor) suffix() string {
	var parts []string
	for {
		save := c.i
		c.skipSpace()
		switch c.peek() {
		case '=':
			c.i++
			c.skipSpace()
			parts = append(parts, "= "+c.value())
			continue
		case '@':
			start := c.i
			c.i++
			c.ident()
			if c.peek() == '(' {
				c.balanced('(', ')')
			}
			parts = append(parts, c.s[start:c.i])
			continue
		}
		c.i = save
		return strings.Join(parts, " ")
	}
}

// scanString returns the offset just past the string literal starting at i.
func scanString(s string, i int) int {
	if strings.HasPrefix(s[i:], `"""`) {
		j := i + 3
		for j < len(s) {
			if s[j] == '\\' && strings.HasPrefix(s[j+1:], `"""`) {
				j += 4
				continue
			}
			if strings.HasPrefix(s[j:], `"""`) {
				return j + 3
			}
			j++
		}
		return len(s)
	}
	j := i + 1
	for j < len(s) {
		switch s[j] {
		case '\\':
			j += 2
			continue
		case '"':
			return j + 1
		case '\n':
			return j
		}
		j++
	}
	return len(s)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isIdent(ch byte) bool {
	return ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9'
}
