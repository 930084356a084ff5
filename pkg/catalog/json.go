package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the catalog as a JSON object with one key per subject
// in catalog order, each value the JSON array of that subject's course
// numbers. encoding/json sorts map keys, so the object is built by hand to
// keep first-appearance order on the wire.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, subject := range c.subjects {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(subject)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(c.courses[subject])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of subject -> course-number arrays,
// preserving the key order of the document. The decoded catalog compares
// Equal to the one that produced the document.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("catalog: expected JSON object, got %v", tok)
	}

	c.subjects = nil
	c.courses = make(map[string][]string)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		subject, ok := tok.(string)
		if !ok {
			return fmt.Errorf("catalog: expected subject key, got %v", tok)
		}
		var nums []string
		if err := dec.Decode(&nums); err != nil {
			return fmt.Errorf("catalog: subject %s: %w", subject, err)
		}
		if _, seen := c.courses[subject]; seen {
			return fmt.Errorf("catalog: duplicate subject key %s", subject)
		}
		c.subjects = append(c.subjects, subject)
		c.courses[subject] = nums
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
