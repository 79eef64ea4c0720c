package parser

import (
	"strings"

	imodel "github.com/cmmoran/sdlgen/internal/model"
	"github.com/cmmoran/sdlgen/pkg/model"
	"github.com/cmmoran/sdlgen/pkg/sdlerr"
)

// scanner cuts schema text into declaration fragments in a single pass,
// tracking brace depth, comments and string literals.
type scanner struct {
	src  string
	pos  int
	line int
}

// extractBits splits src into raw declaration fragments in source order.
func extractBits(src string) ([]*imodel.RawBit, error) {
	s := &scanner{src: src, line: 1}
	var (
		bits      []*imodel.RawBit
		desc      string
		descStart int
	)
	for {
		s.skipSpace()
		if s.eof() {
			break
		}
		switch ch := s.src[s.pos]; {
		case ch == '#':
			s.skipLine()
			continue
		case ch == '"':
			descStart = s.line
			desc = s.readString()
			continue
		case !isIdent(ch):
			return nil, sdlerr.Newf(sdlerr.Syntax, "", "", "unexpected %q", string(ch)).WithLine(s.line)
		}

		line := s.line
		word := s.readWord()
		bit := &imodel.RawBit{Description: desc, Line: line}
		if desc != "" {
			bit.StartLine = descStart
		} else {
			bit.StartLine = line
		}
		desc = ""
		if word == "extend" {
			bit.IsExtend = true
			s.skipSpace()
			word = s.readWord()
		}
		kind, ok := model.KindOf(word)
		if !ok {
			return nil, sdlerr.Newf(sdlerr.Syntax, "", word, "unknown declaration keyword").WithLine(line)
		}
		bit.Kind = kind

		if !kind.HasBlock() {
			bit.Header = strings.TrimSpace(s.readLine())
			bits = append(bits, bit)
			continue
		}
		header, ok := s.readUntil('{')
		bit.Header = strings.TrimSpace(header)
		if !ok {
			return nil, sdlerr.New(sdlerr.Syntax, string(kind), bit.Header, "declaration has no block").WithLine(line)
		}
		body, ok := s.readBlock()
		if !ok {
			return nil, sdlerr.New(sdlerr.Syntax, string(kind), bit.Header, "block is never closed").WithLine(line)
		}
		bit.BodyLines = splitBody(body)
		bits = append(bits, bit)
	}
	return bits, nil
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) advance(n int) {
	end := min(s.pos+n, len(s.src))
	s.line += strings.Count(s.src[s.pos:end], "\n")
	s.pos = end
}

func (s *scanner) skipSpace() {
	for !s.eof() && isSpace(s.src[s.pos]) {
		s.advance(1)
	}
}

func (s *scanner) skipLine() {
	if i := strings.IndexByte(s.src[s.pos:], '\n'); i >= 0 {
		s.advance(i)
		return
	}
	s.pos = len(s.src)
}

func (s *scanner) readWord() string {
	start := s.pos
	for !s.eof() && isIdent(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *scanner) readString() string {
	start := s.pos
	s.advance(scanString(s.src, s.pos) - s.pos)
	return s.src[start:s.pos]
}

// readLine reads a block-less declaration: up to the end of the line outside
// parentheses and strings, joined with following lines that start with "|".
func (s *scanner) readLine() string {
	var b strings.Builder
	depth := 0
	for !s.eof() {
		ch := s.src[s.pos]
		switch {
		case ch == '"':
			b.WriteString(s.readString())
			continue
		case ch == '#' && depth == 0:
			s.skipLine()
			continue
		case ch == '(':
			depth++
		case ch == ')':
			depth--
		case ch == '\n' && depth == 0:
			if !s.continues() {
				return b.String()
			}
			// continuation lines join with a single space
			if !strings.HasSuffix(b.String(), " ") {
				b.WriteByte(' ')
			}
			s.advance(1)
			for !s.eof() && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t' || s.src[s.pos] == '\r') {
				s.advance(1)
			}
			continue
		}
		b.WriteByte(ch)
		s.advance(1)
	}
	return b.String()
}

// continues reports whether the next non-blank line continues a union or
// directive location list.
func (s *scanner) continues() bool {
	rest := strings.TrimLeft(s.src[s.pos:], " \t\r\n")
	return strings.HasPrefix(rest, "|") || strings.HasSuffix(strings.TrimRight(s.lastLine(), " \t\r"), "=") ||
		strings.HasSuffix(strings.TrimRight(s.lastLine(), " \t\r"), "|")
}

func (s *scanner) lastLine() string {
	start := strings.LastIndexByte(s.src[:s.pos], '\n') + 1
	return s.src[start:s.pos]
}

// readUntil reads up to (and consumes) delim outside parentheses and strings.
// Comments are dropped from the text read.
func (s *scanner) readUntil(delim byte) (string, bool) {
	var b strings.Builder
	depth := 0
	for !s.eof() {
		ch := s.src[s.pos]
		switch {
		case ch == '"':
			b.WriteString(s.readString())
			continue
		case ch == '#':
			s.skipLine()
			continue
		case ch == '(':
			depth++
		case ch == ')':
			depth--
		case ch == delim && depth == 0:
			s.advance(1)
			return b.String(), true
		}
		b.WriteByte(ch)
		s.advance(1)
	}
	return b.String(), false
}

// readBlock reads a body after its opening brace and consumes the closing one.
func (s *scanner) readBlock() (string, bool) {
	start := s.pos
	depth := 1
	for !s.eof() {
		ch := s.src[s.pos]
		switch ch {
		case '"':
			s.readString()
			continue
		case '#':
			s.skipLine()
			continue
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				out := s.src[start:s.pos]
				s.advance(1)
				return out, true
			}
		}
		s.advance(1)
	}
	return s.src[start:], false
}

// splitBody breaks a block body into logical lines. A line ends at a newline
// outside brackets; comments inside brackets are dropped.
func splitBody(body string) []string {
	var (
		lines []string
		cur   strings.Builder
		depth int
	)
	flush := func() {
		if l := strings.TrimSpace(cur.String()); l != "" {
			lines = append(lines, l)
		}
		cur.Reset()
	}
	for i := 0; i < len(body); {
		ch := body[i]
		switch {
		case ch == '"':
			n := scanString(body, i)
			cur.WriteString(body[i:n])
			i = n
			continue
		case ch == '#':
			n := strings.IndexByte(body[i:], '\n')
			if n < 0 {
				n = len(body) - i
			}
			if depth == 0 {
				cur.WriteString(body[i : i+n])
			}
			i += n
			continue
		case ch == '(' || ch == '[' || ch == '{' || ch == '<':
			depth++
		case ch == ')' || ch == ']' || ch == '}' || ch == '>':
			depth--
		case ch == '\n' && depth == 0:
			flush()
			i++
			continue
		}
		cur.WriteByte(ch)
		i++
	}
	flush()
	return lines
}
