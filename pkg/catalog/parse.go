package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Separator is the character that divides a listing line into subject code
// and course number. Lines are split on its first occurrence only, so a
// course number may itself contain further separators ("CS-101-H" parses as
// subject "CS", course "101-H").
const Separator = "-"

// MalformedLineError reports a non-blank listing line that cannot be split
// into a subject code and a course number. LineNo is 1-based and counts all
// lines of the trimmed input, including blank ones.
type MalformedLineError struct {
	LineNo int
	Line   string
}

// Error implements the error interface.
func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed line %d: %q: want SUBJECT%sNUMBER", e.LineNo, e.Line, Separator)
}

// Parse groups a course listing into a catalog.
//
// The input is trimmed of leading and trailing whitespace and split into
// lines. Lines that are blank after trimming are skipped. Every other line
// must have the shape SUBJECT-NUMBER and is split on the first separator;
// the course number is appended under its subject, preserving first-seen
// subject order, input course order, and duplicates.
//
// Parse is a pure function of its input: it returns either a complete
// catalog or a *MalformedLineError for the first bad line, never both.
func Parse(text string) (*Catalog, error) {
	c := New()
	for i, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		subject, number, err := splitLine(i+1, line)
		if err != nil {
			return nil, err
		}
		if err := c.Add(subject, number); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ParseReader reads all of r and groups it with [Parse].
func ParseReader(r io.Reader) (*Catalog, error) {
	br := bufio.NewReader(r)
	data, err := io.ReadAll(br)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// splitLine divides a trimmed, non-blank line on the first separator.
// Missing separator, empty subject, or empty course number all fail with
// *MalformedLineError.
func splitLine(lineNo int, line string) (subject, number string, err error) {
	subject, number, found := strings.Cut(line, Separator)
	if !found || subject == "" || number == "" {
		return "", "", &MalformedLineError{LineNo: lineNo, Line: line}
	}
	return subject, number, nil
}
