// Package io provides import/export of catalogs as JSON files.
//
// Exports use two-space indentation and keep subject order, matching the
// subject_data.json layout the group command produces by default.
package io
