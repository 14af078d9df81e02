// Package cycle segments a unit's production history into its current
// manufacturing cycle and extracts the milestone timestamps the factory
// report is built from.
//
// A cycle is bounded by the unit's most recent RECEIVE intake event; only
// workstation visits from that intake onward participate. The milestone walk
// follows a fixed station-adjacency graph (VI1 -> Disassembly/UPGRADE ->
// BBD/ASSY1/Assembley -> FLA/CHIFLASH, plus the independent PACKING ->
// SHIPPING chain) with the exact tie-break and fallback rules of the portal's
// reporting pipeline.
//
// Extract is a pure function: it performs no I/O, never fails, and is safe to
// call concurrently across units. Missing or malformed timestamps degrade to
// "absent" rather than erroring.
package cycle
