package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestParseGrouping(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string][]string
		order []string
	}{
		{
			name:  "two subjects",
			input: "CS-101\nCS-102\nMATH-201",
			want:  map[string][]string{"CS": {"101", "102"}, "MATH": {"201"}},
			order: []string{"CS", "MATH"},
		},
		{
			name:  "duplicate course kept",
			input: "CS-101\nCS-101",
			want:  map[string][]string{"CS": {"101", "101"}},
			order: []string{"CS"},
		},
		{
			name:  "blank line skipped",
			input: "CS-101\n\nMATH-201",
			want:  map[string][]string{"CS": {"101"}, "MATH": {"201"}},
			order: []string{"CS", "MATH"},
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "\n\n  CS-101  \n\tMATH-201\n\n",
			want:  map[string][]string{"CS": {"101"}, "MATH": {"201"}},
			order: []string{"CS", "MATH"},
		},
		{
			name:  "interleaved subjects keep first-seen order",
			input: "MATH-201\nCS-101\nMATH-202\nCS-102",
			want:  map[string][]string{"MATH": {"201", "202"}, "CS": {"101", "102"}},
			order: []string{"MATH", "CS"},
		},
		{
			name:  "extra separators stay in the course number",
			input: "CS-101-H\nENG-205",
			want:  map[string][]string{"CS": {"101-H"}, "ENG": {"205"}},
			order: []string{"CS", "ENG"},
		},
		{
			name:  "empty input",
			input: "",
			want:  map[string][]string{},
			order: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			subjects := c.Subjects()
			if len(subjects) != len(tt.order) {
				t.Fatalf("Subjects() = %v, want %v", subjects, tt.order)
			}
			for i, s := range tt.order {
				if subjects[i] != s {
					t.Errorf("Subjects()[%d] = %q, want %q", i, subjects[i], s)
				}
			}

			for subject, want := range tt.want {
				got, ok := c.Courses(subject)
				if !ok {
					t.Fatalf("Courses(%q) missing", subject)
				}
				if strings.Join(got, ",") != strings.Join(want, ",") {
					t.Errorf("Courses(%q) = %v, want %v", subject, got, want)
				}
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantText string
	}{
		{name: "no separator", input: "CS101", wantLine: 1, wantText: "CS101"},
		{name: "no separator later", input: "CS-101\nMATH201", wantLine: 2, wantText: "MATH201"},
		{name: "empty subject", input: "-101", wantLine: 1, wantText: "-101"},
		{name: "empty course", input: "CS-", wantLine: 1, wantText: "CS-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.input)
			if c != nil {
				t.Error("Parse() returned a catalog alongside an error")
			}

			var mle *MalformedLineError
			if !errors.As(err, &mle) {
				t.Fatalf("Parse() error = %v, want *MalformedLineError", err)
			}
			if mle.LineNo != tt.wantLine {
				t.Errorf("LineNo = %d, want %d", mle.LineNo, tt.wantLine)
			}
			if mle.Line != tt.wantText {
				t.Errorf("Line = %q, want %q", mle.Line, tt.wantText)
			}
		})
	}
}

// Every non-blank line contributes exactly one course entry.
func TestParseCountProperty(t *testing.T) {
	input := "CS-101\nCS-102\n\nMATH-201\nCS-101\n\nPHYS-150"
	nonBlank := 0
	for _, line := range strings.Split(input, "\n") {
		if strings.TrimSpace(line) != "" {
			nonBlank++
		}
	}

	c, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.CourseCount() != nonBlank {
		t.Errorf("CourseCount() = %d, want %d non-blank lines", c.CourseCount(), nonBlank)
	}
}

func TestParseIdempotent(t *testing.T) {
	input := "CS-101\nMATH-201\nCS-102\nCS-101"

	first, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	second, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !first.Equal(second) {
		t.Error("two parses of the same input are not Equal")
	}
}

func TestParseReader(t *testing.T) {
	c, err := ParseReader(strings.NewReader("CS-101\nMATH-201"))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	if c.SubjectCount() != 2 {
		t.Errorf("SubjectCount() = %d, want 2", c.SubjectCount())
	}
}

func TestMalformedLineErrorMessage(t *testing.T) {
	err := &MalformedLineError{LineNo: 3, Line: "CS101"}
	msg := err.Error()
	if !strings.Contains(msg, "line 3") || !strings.Contains(msg, "CS101") {
		t.Errorf("Error() = %q, want line number and offending text", msg)
	}
}
