package catalog

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidSubject is returned by [Catalog.Add] when the subject code
	// is empty. All subjects must have non-empty identifiers.
	ErrInvalidSubject = errors.New("subject code must not be empty")

	// ErrInvalidCourse is returned by [Catalog.Add] when the course number
	// is empty.
	ErrInvalidCourse = errors.New("course number must not be empty")
)

// Catalog is an insertion-ordered mapping from subject code to the ordered
// list of its course numbers. Subjects appear in the order they were first
// added, course numbers within a subject keep their insertion order, and
// duplicate course numbers are preserved.
//
// The zero value is not usable - use New to create a valid Catalog instance.
// Catalog is not safe for concurrent use without external synchronization.
type Catalog struct {
	subjects []string            // subject codes in first-seen order
	courses  map[string][]string // subject code -> course numbers in input order
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		courses: make(map[string][]string),
	}
}

// Add appends a course number under the given subject. A subject seen for
// the first time is placed after all previously seen subjects; an existing
// subject keeps its position and gains the course at the end of its list.
// Duplicate course numbers are kept.
//
// Returns ErrInvalidSubject or ErrInvalidCourse for empty inputs.
func (c *Catalog) Add(subject, number string) error {
	if subject == "" {
		return ErrInvalidSubject
	}
	if number == "" {
		return ErrInvalidCourse
	}
	if _, seen := c.courses[subject]; !seen {
		c.subjects = append(c.subjects, subject)
	}
	c.courses[subject] = append(c.courses[subject], number)
	return nil
}

// Subjects returns the subject codes in first-appearance order.
// The returned slice is a copy and can be modified freely.
func (c *Catalog) Subjects() []string {
	return slices.Clone(c.subjects)
}

// Courses returns the course numbers recorded for subject, in input order,
// and true. For an unknown subject it returns nil and false. The returned
// slice is a copy and can be modified freely.
func (c *Catalog) Courses(subject string) ([]string, bool) {
	nums, ok := c.courses[subject]
	if !ok {
		return nil, false
	}
	return slices.Clone(nums), true
}

// Has reports whether the catalog contains the subject.
func (c *Catalog) Has(subject string) bool {
	_, ok := c.courses[subject]
	return ok
}

// SubjectCount returns the number of distinct subjects.
func (c *Catalog) SubjectCount() int { return len(c.subjects) }

// CourseCount returns the total number of course entries across all
// subjects, counting duplicates.
func (c *Catalog) CourseCount() int {
	var n int
	for _, nums := range c.courses {
		n += len(nums)
	}
	return n
}

// Equal reports whether both catalogs contain the same subjects in the same
// order with identical course lists. A nil argument is never equal.
func (c *Catalog) Equal(other *Catalog) bool {
	if other == nil {
		return false
	}
	if !slices.Equal(c.subjects, other.subjects) {
		return false
	}
	for _, s := range c.subjects {
		if !slices.Equal(c.courses[s], other.courses[s]) {
			return false
		}
	}
	return true
}
