package cycle_test

import (
	"reflect"
	"testing"

	"github.com/CloudCante/Tracking-TOO/internal/cycle"
)

func ws(station, start, end string) cycle.Record {
	return cycle.Record{Source: "workstation", Station: station, Start: start, End: end}
}

func TestExtractEmptyHistory(t *testing.T) {
	got := cycle.Extract("SN001", nil)
	want := cycle.Milestones{SerialNumber: "SN001"}
	if got != want {
		t.Fatalf("expected identity-only result, got %#v", got)
	}
}

func TestExtractIgnoresNonWorkstationRecords(t *testing.T) {
	records := []cycle.Record{
		{Source: "testlog", Station: "VI1", Start: "2024-03-01T08:00:00", End: "2024-03-01T09:00:00"},
		{Source: "workstation", Station: "", Start: "2024-03-01T08:00:00", End: "2024-03-01T09:00:00"},
	}
	got := cycle.Extract("SN002", records)
	want := cycle.Milestones{SerialNumber: "SN002"}
	if got != want {
		t.Fatalf("expected identity-only result, got %#v", got)
	}
}

func TestExtractReceiveOnlyYieldsNoMilestones(t *testing.T) {
	records := []cycle.Record{ws(cycle.StationReceive, "2024-03-01T08:00:00", "2024-03-01T08:30:00")}
	got := cycle.Extract("SN003", records)
	want := cycle.Milestones{SerialNumber: "SN003"}
	if got != want {
		t.Fatalf("expected no milestones for intake-only history, got %#v", got)
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	records := []cycle.Record{
		ws(cycle.StationReceive, "2024-03-01T08:00:00", "2024-03-01T08:30:00"),
		ws(cycle.StationVI1, "2024-03-01T09:00:00", "2024-03-01T10:00:00"),
		ws(cycle.StationUpgrade, "2024-03-01T11:00:00", "2024-03-01T12:00:00"),
	}
	first := cycle.Extract("SN004", records)
	second := cycle.Extract("SN004", records)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %#v then %#v", first, second)
	}
}

func TestExtractFullWalk(t *testing.T) {
	records := []cycle.Record{
		ws(cycle.StationReceive, "2024-03-01T08:00:00", "2024-03-01T08:30:00"),
		ws(cycle.StationVI1, "2024-03-01T09:00:00", "2024-03-01T10:00:00"),
		ws(cycle.StationUpgrade, "2024-03-01T11:00:00", "2024-03-01T12:00:00"),
		ws(cycle.StationBBD, "2024-03-01T13:00:00", "2024-03-01T14:00:00"),
		ws(cycle.StationFLA, "2024-03-01T15:00:00", ""),
	}
	got := cycle.Extract("SN005", records)
	want := cycle.Milestones{
		SerialNumber:       "SN005",
		VI1End:             "2024-03-01T10:00:00",
		VI1NextStation:     cycle.StationUpgrade,
		VI1NextStart:       "2024-03-01T11:00:00",
		UpgradeEnd:         "2024-03-01T12:00:00",
		BBDAssyStation:     cycle.StationBBD,
		BBDAssyStart:       "2024-03-01T13:00:00",
		BBDAssyEnd:         "2024-03-01T14:00:00",
		FLAChiflashStation: cycle.StationFLA,
		FLAChiflashStart:   "2024-03-01T15:00:00",
	}
	if got != want {
		t.Fatalf("unexpected walk result:\n got %#v\nwant %#v", got, want)
	}
}

func TestExtractCycleIsolation(t *testing.T) {
	// VI1 between the two intakes belongs to the prior cycle and must not
	// populate VI1End.
	records := []cycle.Record{
		ws(cycle.StationReceive, "2024-01-10T08:00:00", "2024-01-10T08:30:00"),
		ws(cycle.StationVI1, "2024-01-11T09:00:00", "2024-01-11T10:00:00"),
		ws(cycle.StationReceive, "2024-02-20T08:00:00", "2024-02-20T08:30:00"),
	}
	got := cycle.Extract("SN006", records)
	if got.VI1End != "" {
		t.Fatalf("expected prior-cycle VI1 to be excluded, got VI1End=%q", got.VI1End)
	}
}

func TestExtractNoReceiveUsesFullHistory(t *testing.T) {
	records := []cycle.Record{
		ws(cycle.StationVI1, "2024-03-01T09:00:00", "2024-03-01T10:00:00"),
		ws(cycle.StationDisassembly, "2024-03-01T11:00:00", "2024-03-01T11:45:00"),
	}
	got := cycle.Extract("SN007", records)
	if got.VI1End != "2024-03-01T10:00:00" {
		t.Fatalf("expected full history without RECEIVE, got VI1End=%q", got.VI1End)
	}
	if got.VI1NextStation != cycle.StationDisassembly {
		t.Fatalf("expected Disassembly as next station, got %q", got.VI1NextStation)
	}
}

func TestExtractTieBreakFavorsDisassembly(t *testing.T) {
	records := []cycle.Record{
		ws(cycle.StationVI1, "2024-03-01T09:00:00", "2024-03-01T10:00:00"),
		ws(cycle.StationUpgrade, "2024-03-01T11:00:00", "2024-03-01T12:00:00"),
		ws(cycle.StationDisassembly, "2024-03-01T11:00:00", "2024-03-01T11:30:00"),
	}
	got := cycle.Extract("SN008", records)
	if got.VI1NextStation != cycle.StationDisassembly {
		t.Fatalf("expected Disassembly to win the tie, got %q", got.VI1NextStation)
	}
	if got.UpgradeEnd != "" {
		t.Fatalf("expected no upgrade end when Disassembly wins, got %q", got.UpgradeEnd)
	}
}

func TestExtractDisassemblyHaltsAssemblySearch(t *testing.T) {
	records := []cycle.Record{
		ws(cycle.StationVI1, "2024-03-01T09:00:00", "2024-03-01T10:00:00"),
		ws(cycle.StationDisassembly, "2024-03-01T10:30:00", "2024-03-01T11:00:00"),
		ws(cycle.StationBBD, "2024-03-01T12:00:00", "2024-03-01T13:00:00"),
	}
	got := cycle.Extract("SN009", records)
	if got.VI1NextStation != cycle.StationDisassembly {
		t.Fatalf("expected Disassembly as next station, got %q", got.VI1NextStation)
	}
	if got.BBDAssyStation != "" {
		t.Fatalf("assembly search must only follow UPGRADE, got %q", got.BBDAssyStation)
	}
}

func TestExtractMostRecentVI1End(t *testing.T) {
	records := []cycle.Record{
		ws(cycle.StationVI1, "2024-03-02T09:00:00", "2024-03-02T10:00:00"),
		ws(cycle.StationVI1, "2024-03-01T09:00:00", "2024-03-01T10:00:00"),
	}
	got := cycle.Extract("SN010", records)
	if got.VI1End != "2024-03-02T10:00:00" {
		t.Fatalf("expected most recent VI1 end, got %q", got.VI1End)
	}
}

func TestExtractAssemblyCandidatePriority(t *testing.T) {
	// ASSY1 starts earlier than BBD; the earliest start wins regardless of
	// the BBD-first enumeration order.
	records := []cycle.Record{
		ws(cycle.StationVI1, "2024-03-01T09:00:00", "2024-03-01T10:00:00"),
		ws(cycle.StationUpgrade, "2024-03-01T11:00:00", "2024-03-01T12:00:00"),
		ws(cycle.StationBBD, "2024-03-01T14:00:00", "2024-03-01T15:00:00"),
		ws(cycle.StationASSY1, "2024-03-01T13:00:00", "2024-03-01T13:30:00"),
	}
	got := cycle.Extract("SN011", records)
	if got.BBDAssyStation != cycle.StationASSY1 {
		t.Fatalf("expected ASSY1 with earliest start, got %q", got.BBDAssyStation)
	}
	if got.BBDAssyStart != "2024-03-01T13:00:00" || got.BBDAssyEnd != "2024-03-01T13:30:00" {
		t.Fatalf("unexpected assembly visit: %#v", got)
	}
}

func TestExtractMissingStartNeverQualifies(t *testing.T) {
	records := []cycle.Record{
		ws(cycle.StationVI1, "2024-03-01T09:00:00", "2024-03-01T10:00:00"),
		ws(cycle.StationUpgrade, "", "2024-03-01T12:00:00"),
	}
	got := cycle.Extract("SN012", records)
	if got.VI1NextStation != "" {
		t.Fatalf("visit without a start must be skipped, got next station %q", got.VI1NextStation)
	}
}

func TestExtractPackingAndShipping(t *testing.T) {
	records := []cycle.Record{
		ws(cycle.StationPacking, "2024-03-02T08:00:00", "2024-03-02T09:00:00"),
		ws(cycle.StationPacking, "2024-03-01T08:00:00", "2024-03-01T09:00:00"),
		ws(cycle.StationShipping, "2024-03-02T10:00:00", ""),
	}
	got := cycle.Extract("SN013", records)
	if got.PackingEnd != "2024-03-02T09:00:00" {
		t.Fatalf("expected latest packing end, got %q", got.PackingEnd)
	}
	if got.ShippingStart != "2024-03-02T10:00:00" {
		t.Fatalf("expected shipping after latest packing, got %q", got.ShippingStart)
	}
}

func TestExtractShippingBeforePackingEndIgnored(t *testing.T) {
	records := []cycle.Record{
		ws(cycle.StationPacking, "2024-03-01T08:00:00", "2024-03-01T09:00:00"),
		ws(cycle.StationPacking, "2024-03-02T08:00:00", "2024-03-02T09:00:00"),
		ws(cycle.StationShipping, "2024-03-01T10:00:00", ""),
	}
	got := cycle.Extract("SN014", records)
	if got.PackingEnd != "2024-03-02T09:00:00" {
		t.Fatalf("expected latest packing end, got %q", got.PackingEnd)
	}
	if got.ShippingStart != "" {
		t.Fatalf("shipping before the latest packing end must be ignored, got %q", got.ShippingStart)
	}
}

func TestExtractPackingIndependentOfInspectionChain(t *testing.T) {
	// No VI1 at all: the packing chain still resolves.
	records := []cycle.Record{
		ws(cycle.StationPacking, "2024-03-01T08:00:00", "2024-03-01T09:00:00"),
		ws(cycle.StationShipping, "2024-03-01T10:00:00", ""),
	}
	got := cycle.Extract("SN015", records)
	if got.VI1End != "" {
		t.Fatalf("expected no VI1 milestone, got %q", got.VI1End)
	}
	if got.PackingEnd == "" || got.ShippingStart == "" {
		t.Fatalf("packing chain should resolve without VI1: %#v", got)
	}
}

func TestExtractMalformedTimestampsDegrade(t *testing.T) {
	records := []cycle.Record{
		ws(cycle.StationReceive, "not-a-timestamp", ""),
		ws(cycle.StationVI1, "2024-03-01T09:00:00", "garbage"),
		ws(cycle.StationPacking, "2024-03-01T12:00:00", "also garbage"),
	}
	// Must not panic; the malformed RECEIVE start sorts minimal so the whole
	// history stays in scope.
	got := cycle.Extract("SN016", records)
	if got.VI1End != "garbage" {
		t.Fatalf("raw end value should pass through unparsed, got %q", got.VI1End)
	}
	if got.PackingEnd != "also garbage" {
		t.Fatalf("raw packing end should pass through unparsed, got %q", got.PackingEnd)
	}
}

func TestExtractUpgradeEndMatchesChosenVisit(t *testing.T) {
	// Two UPGRADE visits; the end must come from the visit whose start was
	// selected, not the first or latest one.
	records := []cycle.Record{
		ws(cycle.StationVI1, "2024-03-01T09:00:00", "2024-03-01T10:00:00"),
		ws(cycle.StationUpgrade, "2024-03-01T07:00:00", "2024-03-01T07:30:00"),
		ws(cycle.StationUpgrade, "2024-03-01T11:00:00", "2024-03-01T12:00:00"),
	}
	got := cycle.Extract("SN017", records)
	if got.VI1NextStart != "2024-03-01T11:00:00" {
		t.Fatalf("expected the post-VI1 upgrade visit, got %q", got.VI1NextStart)
	}
	if got.UpgradeEnd != "2024-03-01T12:00:00" {
		t.Fatalf("expected end of the selected upgrade visit, got %q", got.UpgradeEnd)
	}
}
