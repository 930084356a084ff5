package cli

import _ "embed"

// sampleListing is a small built-in course listing, usable with
// "group --sample" to try the tool without preparing an input file.
//
//go:embed sample_listing.txt
var sampleListing string
