package cycle

// Station names as they appear in the portal's history feed. Matching is
// exact and case-sensitive: the names are opaque identifiers owned by the
// plant system, including the misspelled Assembley variant.
const (
	StationReceive     = "RECEIVE"
	StationVI1         = "VI1"
	StationDisassembly = "Disassembly"
	StationUpgrade     = "UPGRADE"
	StationBBD         = "BBD"
	StationASSY1       = "ASSY1"
	StationAssembley   = "Assembley"
	StationFLA         = "FLA"
	StationCHIFLASH    = "CHIFLASH"
	StationPacking     = "PACKING"
	StationShipping    = "SHIPPING"
)

// sourceWorkstation tags history rows that describe a workstation visit.
// Rows with any other source (test results, repairs) are ignored.
const sourceWorkstation = "workstation"

// Record is one raw production-history event for a unit. Timestamps are the
// portal's ISO-8601 strings; an empty string means the value was absent or
// null upstream (a visit still in progress has no End).
type Record struct {
	Source  string
	Station string
	Start   string
	End     string
}

// Visit is one entry/exit pair at a station.
type Visit struct {
	Start string
	End   string
}

// StationGroups maps a station name to its visits in original record order.
// Derivation steps that need time ordering sort locally; the groups themselves
// preserve encounter order.
type StationGroups map[string][]Visit

// Milestones is the derived record for one unit's current cycle. Every field
// except SerialNumber is nullable; an empty string means the milestone could
// not be derived. Fields are independent unless a derivation depends on an
// earlier value.
type Milestones struct {
	SerialNumber       string
	VI1End             string
	VI1NextStation     string
	VI1NextStart       string
	UpgradeEnd         string
	BBDAssyStation     string
	BBDAssyStart       string
	BBDAssyEnd         string
	FLAChiflashStation string
	FLAChiflashStart   string
	PackingEnd         string
	ShippingStart      string
}
