package parser

import (
	"slices"
	"strings"

	imodel "github.com/cmmoran/sdlgen/internal/model"
	"github.com/cmmoran/sdlgen/pkg/model"
)

// locateComments finds, for every declaration header, the block of comment
// lines directly above it. A blank or non-comment line ends the block. When
// a description precedes the header, the comments above the description come
// first, then those between the description and the header.
func locateComments(src string, bits []*imodel.RawBit) []*imodel.CommentEntry {
	lines := strings.Split(src, "\n")
	var out []*imodel.CommentEntry
	for _, bit := range bits {
		block := commentsAbove(lines, bit.StartLine)
		if bit.StartLine != bit.Line {
			block = append(block, commentsAbove(lines, bit.Line)...)
		}
		if len(block) == 0 {
			continue
		}
		out = append(out, &imodel.CommentEntry{
			Text: strings.Join(block, "\n"),
			Kind: bit.Kind,
			Name: headerName(bit.Kind, bit.Header),
			Line: bit.Line,
		})
	}
	return out
}

// commentsAbove returns the comment lines directly above the 1-based line,
// in source order.
func commentsAbove(lines []string, line int) []string {
	var block []string
	for i := line - 2; i >= 0 && i < len(lines); i-- {
		l := strings.TrimRight(lines[i], " \t\r")
		if !strings.HasPrefix(strings.TrimSpace(l), "#") {
			break
		}
		block = append(block, l)
	}
	slices.Reverse(block)
	return block
}

// attachComments merges comment entries onto declarations by kind and name,
// first match wins. The header line disambiguates extend fragments.
func attachComments(decls []*model.Declaration, entries []*imodel.CommentEntry) {
	for _, d := range decls {
		for _, e := range entries {
			if e.Taken || e.Kind != d.Kind || e.Name != d.BaseName() || e.Line != d.Line {
				continue
			}
			e.Taken = true
			d.Comments = e.Text
			break
		}
	}
}

// headerName extracts the declared base name from a header.
func headerName(kind model.Kind, header string) string {
	c := newCursor(header)
	c.skipSpace()
	if kind == model.KindDirective && c.peek() == '@' {
		c.i++
	}
	return c.ident()
}
