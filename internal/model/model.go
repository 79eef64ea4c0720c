package model

import (
	pub "github.com/cmmoran/sdlgen/pkg/model"
)

// RawBit is a declaration fragment as cut out of the schema text.
type RawBit struct {
	Kind        pub.Kind
	Header      string   // everything between the keyword and the body
	BodyLines   []string // logical lines: comments, or one or more properties
	IsExtend    bool
	Description string // string description directly above the keyword
	Line        int    // 1-based line of the keyword
	StartLine   int    // line of the description, or Line when there is none
}

// CommentEntry is a comment block found directly above a declaration header.
type CommentEntry struct {
	Text  string
	Kind  pub.Kind
	Name  string // base name of the owning declaration
	Line  int    // header line the block touches
	Taken bool
}
