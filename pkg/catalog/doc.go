// Package catalog implements the course grouping core.
//
// A course listing is a block of text with one SUBJECT-NUMBER pair per
// line. [Parse] turns such a listing into a [Catalog], an insertion-ordered
// mapping from subject code to the ordered list of its course numbers:
//
//	c, err := catalog.Parse("CS-101\nCS-102\nMATH-201")
//	// c.Subjects() == ["CS", "MATH"]
//	// c.Courses("CS") == ["101", "102"]
//
// Ordering guarantees:
//   - subjects keep the order of their first appearance in the listing
//   - course numbers within a subject keep input order
//   - duplicate course numbers are preserved, not deduplicated
//
// The JSON codec on Catalog keeps the same ordering on the wire, so an
// exported catalog round-trips into an Equal one.
package catalog
