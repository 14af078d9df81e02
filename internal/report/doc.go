// Package report serializes milestone records into the fixed-format CSV the
// plant consumes, applying the display timestamp transform at the output
// boundary. The transform normalizes portal timestamps to the raw database
// clock (strip zone, correct source-local to UTC, add the display offset);
// it never runs inside the extractor.
package report
