package grammar

import "github.com/KimNorgaard/go-waml/codec"

// members tracks the separators between the members of an array, object,
// tuple or markup expression block. Members are separated by one comma, by
// newlines, or by both; a trailing separator before the closing delimiter
// is allowed.
type members struct {
	count   int
	comma   bool
	newline bool
	comment bool
}

// skip consumes blanks and separators up to the next member or closing
// delimiter. Comments are skipped only when comments is set.
func (m *members) skip(in codec.Input, comments bool) error {
	for in.IsCont() {
		c := in.Head()
		switch {
		case m.comment:
			if c == '\n' {
				m.comment = false
				m.newline = true
			}
		case c == '\n':
			m.newline = true
		case isSpace(c) || c == '\r':
		case c == '#' && comments:
			m.comment = true
		case c == ',':
			if m.count == 0 || m.comma {
				return codec.Expected(in, "value")
			}
			m.comma = true
		default:
			return nil
		}
		in.Step()
	}
	return nil
}

// separated reports whether another member may start here.
func (m *members) separated() bool {
	return m.count == 0 || m.comma || m.newline
}

func (m *members) next() {
	m.count++
	m.comma = false
	m.newline = false
}

// skipBlanks consumes spaces, newlines and, when comments is set, '#'
// comments. It reports the comment state to resume with.
func skipBlanks(in codec.Input, comments, inComment bool) bool {
	for in.IsCont() {
		c := in.Head()
		switch {
		case inComment:
			inComment = c != '\n'
		case isBlank(c):
		case c == '#' && comments:
			inComment = true
		default:
			return false
		}
		in.Step()
	}
	return inComment
}
