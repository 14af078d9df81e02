// Package export drives one report run: it batches serial numbers against
// the portal, funnels each unit's history through the cycle extractor, and
// writes the milestone CSV.
//
// Batches run sequentially, matching the plant tooling this replaces. A
// lock file next to the output CSV keeps two concurrent exports from
// clobbering the same report; a failed batch fetch is logged and skipped so
// one portal hiccup does not sink the whole run.
package export
