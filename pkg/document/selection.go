package document

import "strings"

// Selection is one field of a selection set, with optional sub-selections.
type Selection struct {
	Name     string
	Children []Selection
}

// Field declares a selected field. Children make it an object field.
func Field(name string, children ...Selection) Selection {
	return Selection{Name: name, Children: children}
}

// Fields declares a list of scalar fields.
func Fields(names ...string) []Selection {
	out := make([]Selection, len(names))
	for i, n := range names {
		out[i] = Selection{Name: n}
	}
	return out
}

// writer renders documents with two-space indentation.
type writer struct {
	sb    strings.Builder
	depth int
}

func (w *writer) line(s string) {
	w.sb.WriteString(strings.Repeat("  ", w.depth))
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
}

// open writes `s {` and indents.
func (w *writer) open(s string) {
	w.line(s + " {")
	w.depth++
}

func (w *writer) close(suffix string) {
	w.depth--
	w.line("}" + suffix)
}

func (w *writer) selections(sel []Selection) {
	for _, s := range sel {
		if len(s.Children) == 0 {
			w.line(s.Name)
			continue
		}
		w.open(s.Name)
		w.selections(s.Children)
		w.close("")
	}
}

func (w *writer) String() string {
	return w.sb.String()
}
