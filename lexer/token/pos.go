package token

import "fmt"

type Pos struct {
	Filename     string
	Line, Column int
	Offset       int
}

func NewPosition(filename string, column, line int) Pos {
	return Pos{Filename: filename, Line: line, Column: column}
}

func (pos *Pos) Move(character byte) {
	if character == '\n' {
		pos.Column = 1
		pos.Line++
	} else {
		pos.Column++
	}
	pos.Offset++
}

// IsValid reports whether the position points into a source file.
func (pos Pos) IsValid() bool { return pos.Line > 0 }

func (pos Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.Line, pos.Column)
}
