package textedit

import (
	"strings"
)

// Document is a text file as a sequence of lines.
type Document struct {
	Lines []string
	// trailingNewline records whether the source ended with "\n"
	trailingNewline bool
}

// Parse splits content into lines.
func Parse(content []byte) *Document {
	text := string(content)
	doc := &Document{trailingNewline: text == "" || strings.HasSuffix(text, "\n")}
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return doc
	}
	doc.Lines = strings.Split(text, "\n")
	return doc
}

// Bytes renders the document. Edited documents always end with a newline.
func (d *Document) Bytes() []byte {
	if len(d.Lines) == 0 {
		return nil
	}
	out := strings.Join(d.Lines, "\n")
	if d.trailingNewline {
		out += "\n"
	}
	return []byte(out)
}

// HasMarker reports whether any line contains marker.
func (d *Document) HasMarker(marker string) bool {
	for _, line := range d.Lines {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// Index returns the position of the first line equal to anchor after
// trimming surrounding whitespace, or -1.
func (d *Document) Index(anchor string) int {
	want := strings.TrimSpace(anchor)
	for i, line := range d.Lines {
		if strings.TrimSpace(line) == want {
			return i
		}
	}
	return -1
}

// InsertAfter inserts line after the anchor line and reports whether the
// anchor was found.
func (d *Document) InsertAfter(anchor, line string) bool {
	i := d.Index(anchor)
	if i < 0 {
		return false
	}
	d.Lines = append(d.Lines[:i+1], append([]string{line}, d.Lines[i+1:]...)...)
	d.trailingNewline = true
	return true
}

// Append adds line at the end.
func (d *Document) Append(line string) {
	d.Lines = append(d.Lines, line)
	d.trailingNewline = true
}
