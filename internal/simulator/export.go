package simulator

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ardillaCHIKI/App2-taxi/internal/models"
)

// Exporter writes the run's artifacts as JSON files for the map frontend
// and offline analysis.
type Exporter struct {
	dir string
}

func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

func (e *Exporter) write(name string, v interface{}) error {
	if err := os.MkdirAll(e.dir, os.ModePerm); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(e.dir, name), data, 0o644)
}

// ExportTrips dumps the completed ledger.
func (e *Exporter) ExportTrips(trips []models.Trip) error {
	return e.write("trips.json", trips)
}

// ExportSnapshot overwrites the live fleet view.
func (e *Exporter) ExportSnapshot(snap models.Snapshot) error {
	return e.write("live_snapshot.json", snap)
}

// ExportDailyReports dumps every closed day's report.
func (e *Exporter) ExportDailyReports(reports []models.DailyReport) error {
	return e.write("daily_reports.json", reports)
}

// ExportFinalReport dumps the end-of-run aggregate.
func (e *Exporter) ExportFinalReport(report models.FinalReport) error {
	return e.write("final_report.json", report)
}
