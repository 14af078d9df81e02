package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/CloudCante/Tracking-TOO/internal/cycle"
)

// Header is the fixed 12-column layout the plant's downstream reports expect.
// Column order matches the milestone record field order and must not change.
var Header = []string{
	"Serial Number",
	"VI1 End Time",
	"Next Station After VI1",
	"Next Station Start Time",
	"Upgrade End Time",
	"BBD/ASSY1 Station",
	"BBD/ASSY1 Start Time",
	"BBD/ASSY1 End Time",
	"FLA/CHIFLASH Station",
	"FLA/CHIFLASH Start Time",
	"Packing End Time",
	"Shipping Start Time",
}

// Row renders one milestone record. Timestamp columns run through the display
// converter; station-name columns pass through untouched.
func Row(m cycle.Milestones, conv Converter) []string {
	return []string{
		m.SerialNumber,
		conv.Display(m.VI1End),
		m.VI1NextStation,
		conv.Display(m.VI1NextStart),
		conv.Display(m.UpgradeEnd),
		m.BBDAssyStation,
		conv.Display(m.BBDAssyStart),
		conv.Display(m.BBDAssyEnd),
		m.FLAChiflashStation,
		conv.Display(m.FLAChiflashStart),
		conv.Display(m.PackingEnd),
		conv.Display(m.ShippingStart),
	}
}

// Write emits the CSV header and one row per milestone record.
func Write(w io.Writer, results []cycle.Milestones, conv Converter) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write(Row(result, conv)); err != nil {
			return fmt.Errorf("write csv row for %s: %w", result.SerialNumber, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteFile writes the report to path, truncating any existing file.
func WriteFile(path string, results []cycle.Milestones, conv Converter) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := Write(file, results, conv); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close report file: %w", err)
	}
	return nil
}
