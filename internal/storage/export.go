package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/atomsim/internal/sim"
)

type ExportData struct {
	Scenario string             `json:"scenario"`
	Seed     int64              `json:"seed"`
	Ticks    int                `json:"ticks"`
	Final    sim.Stats          `json:"final"`
	Stats    []sim.Stats        `json:"stats"`
	Metrics  map[string]float64 `json:"metrics"`
}

func newExport(scenario string, seed int64, result *sim.Result) ExportData {
	return ExportData{
		Scenario: scenario,
		Seed:     seed,
		Ticks:    result.TicksTaken,
		Final:    result.Final,
		Stats:    result.Stats,
		Metrics:  result.Metrics,
	}
}

// ExportJSON writes the full result of a run to w.
func ExportJSON(w io.Writer, scenario string, seed int64, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExport(scenario, seed, result))
}

func ExportJSONFile(path, scenario string, seed int64, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, scenario, seed, result)
}
