package cycle

import "sort"

// Extract derives the milestone record for one unit from its raw production
// history. The input may be empty, may contain non-workstation events, and may
// carry missing or malformed timestamps; none of those are errors. The result
// always has SerialNumber set and leaves every milestone the caller cannot
// derive empty.
func Extract(serial string, records []Record) Milestones {
	result := Milestones{SerialNumber: serial}

	events := filterWorkstation(records)
	if len(events) == 0 {
		return result
	}

	events = currentCycle(events)
	groups := groupByStation(events)

	walkInspectionChain(&result, groups)
	walkPackingChain(&result, groups)
	return result
}

// filterWorkstation keeps only workstation rows that name a station.
func filterWorkstation(records []Record) []Record {
	events := make([]Record, 0, len(records))
	for _, record := range records {
		if record.Source == sourceWorkstation && record.Station != "" {
			events = append(events, record)
		}
	}
	return events
}

// currentCycle restricts events to the unit's most recent manufacturing
// cycle: everything starting at or after the latest RECEIVE intake. A unit
// with no RECEIVE on record keeps its full history as a single cycle.
func currentCycle(events []Record) []Record {
	var receives []Record
	for _, event := range events {
		if event.Station == StationReceive {
			receives = append(receives, event)
		}
	}
	if len(receives) == 0 {
		return events
	}

	sort.SliceStable(receives, func(i, j int) bool {
		return parseTimestamp(receives[i].Start).Before(parseTimestamp(receives[j].Start))
	})
	boundary := parseTimestamp(receives[len(receives)-1].Start)

	scoped := make([]Record, 0, len(events))
	for _, event := range events {
		if !parseTimestamp(event.Start).Before(boundary) {
			scoped = append(scoped, event)
		}
	}
	return scoped
}

// groupByStation buckets visits per station, preserving encounter order.
func groupByStation(events []Record) StationGroups {
	groups := make(StationGroups)
	for _, event := range events {
		groups[event.Station] = append(groups[event.Station], Visit{Start: event.Start, End: event.End})
	}
	return groups
}

// walkInspectionChain populates the VI1 -> UPGRADE -> BBD/ASSY1 ->
// FLA/CHIFLASH sequence. Each step runs only when its predecessor produced a
// value; a broken link leaves every downstream field empty.
func walkInspectionChain(result *Milestones, groups StationGroups) {
	vi1Visits, ok := groups[StationVI1]
	if !ok {
		return
	}
	result.VI1End = latestEnd(vi1Visits)

	next, ok := nextVisitAfter(groups, []string{StationDisassembly, StationUpgrade}, result.VI1End)
	if !ok {
		return
	}
	result.VI1NextStation = next.station
	result.VI1NextStart = next.visit.Start

	if next.station != StationUpgrade {
		return
	}
	upgrade, ok := visitStartingAt(groups[StationUpgrade], next.visit.Start)
	if !ok {
		return
	}
	result.UpgradeEnd = upgrade.End

	assembly, ok := nextVisitAfter(groups, []string{StationBBD, StationASSY1, StationAssembley}, upgrade.End)
	if !ok {
		return
	}
	result.BBDAssyStation = assembly.station
	result.BBDAssyStart = assembly.visit.Start
	result.BBDAssyEnd = assembly.visit.End

	flash, ok := nextVisitAfter(groups, []string{StationFLA, StationCHIFLASH}, assembly.visit.End)
	if !ok {
		return
	}
	result.FLAChiflashStation = flash.station
	result.FLAChiflashStart = flash.visit.Start
}

// walkPackingChain populates the PACKING -> SHIPPING pair. It is independent
// of the inspection chain.
func walkPackingChain(result *Milestones, groups StationGroups) {
	packingVisits, ok := groups[StationPacking]
	if !ok {
		return
	}
	result.PackingEnd = latestEnd(packingVisits)

	for _, visit := range groups[StationShipping] {
		if visit.Start != "" && result.PackingEnd != "" && visit.Start > result.PackingEnd {
			result.ShippingStart = visit.Start
			break
		}
	}
}

type stationVisit struct {
	station string
	visit   Visit
}

// nextVisitAfter scans each listed station's visits in recorded order and
// keeps the first visit whose start is strictly greater than after, at most
// one candidate per station. The winner is the candidate with the smallest
// start; the stable sort breaks ties in station enumeration order.
//
// Comparisons are on the raw ISO strings, matching the portal's report
// generator byte for byte. Empty starts never qualify, and an empty after
// yields no candidates at all.
func nextVisitAfter(groups StationGroups, stations []string, after string) (stationVisit, bool) {
	var candidates []stationVisit
	for _, station := range stations {
		for _, visit := range groups[station] {
			if visit.Start != "" && after != "" && visit.Start > after {
				candidates = append(candidates, stationVisit{station: station, visit: visit})
				break
			}
		}
	}
	if len(candidates) == 0 {
		return stationVisit{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].visit.Start < candidates[j].visit.Start
	})
	return candidates[0], true
}

// visitStartingAt finds the visit whose start exactly equals start.
func visitStartingAt(visits []Visit, start string) (Visit, bool) {
	for _, visit := range visits {
		if visit.Start == start {
			return visit, true
		}
	}
	return Visit{}, false
}

// latestEnd returns the end of the visit with the most recent parsed end
// time. Unparseable ends sort first, so a single visit with a missing end
// still wins when it is the only one.
func latestEnd(visits []Visit) string {
	sorted := make([]Visit, len(visits))
	copy(sorted, visits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return parseTimestamp(sorted[i].End).Before(parseTimestamp(sorted[j].End))
	})
	return sorted[len(sorted)-1].End
}
