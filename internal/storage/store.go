package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/atomsim/internal/sim"
)

// Store keeps one directory per headless run holding metadata.json and a
// per-tick stats.csv.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Ticks     int                `json:"ticks"`
	Substeps  int                `json:"substeps"`
	TimeScale float64            `json:"time_scale"`
	Atoms     int                `json:"atoms"`
	Bonds     int                `json:"bonds"`
	Molecules int                `json:"molecules"`
	Metrics   map[string]float64 `json:"metrics"`
}

var statsHeader = []string{
	"tick", "atoms", "bonds", "molecules", "wells",
	"kinetic_energy", "max_speed",
	"formed", "broken", "inserted", "dissociated", "annealed", "decayed", "vanished",
}

// Save writes a run record and returns its id. meta.ID, Timestamp and the
// final counts are filled in from the result.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	meta.ID = meta.Scenario + "_" + uuid.NewString()[:8]
	meta.Timestamp = s.now()
	meta.Atoms = result.Final.Atoms
	meta.Bonds = result.Final.Bonds
	meta.Molecules = result.Final.Molecules
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "stats.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(statsHeader); err != nil {
		return "", err
	}
	for _, st := range result.Stats {
		if err := w.Write(statsRow(st)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func statsRow(st sim.Stats) []string {
	itoa := strconv.Itoa
	ftoa := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	return []string{
		itoa(st.Tick), itoa(st.Atoms), itoa(st.Bonds), itoa(st.Molecules), itoa(st.Wells),
		ftoa(st.KineticEnergy), ftoa(st.MaxSpeed),
		itoa(st.Formed), itoa(st.Broken), itoa(st.Inserted), itoa(st.Dissociated),
		itoa(st.Annealed), itoa(st.Decayed), itoa(st.Vanished),
	}
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStats reads back the per-tick stats of a run.
func (s *Store) LoadStats(runID string) ([]sim.Stats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "stats.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(statsHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Stats{}, nil
	}

	out := make([]sim.Stats, 0, len(records)-1)
	for i, rec := range records[1:] {
		st, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("stats.csv line %d: %w", i+2, err)
		}
		out = append(out, st)
	}
	return out, nil
}

func parseRow(rec []string) (sim.Stats, error) {
	ints := make([]int, 0, 12)
	floats := make([]float64, 0, 2)
	for i, field := range rec {
		if i == 5 || i == 6 {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return sim.Stats{}, err
			}
			floats = append(floats, v)
			continue
		}
		v, err := strconv.Atoi(field)
		if err != nil {
			return sim.Stats{}, err
		}
		ints = append(ints, v)
	}
	return sim.Stats{
		Tick: ints[0], Atoms: ints[1], Bonds: ints[2], Molecules: ints[3], Wells: ints[4],
		KineticEnergy: floats[0], MaxSpeed: floats[1],
		Formed: ints[5], Broken: ints[6], Inserted: ints[7], Dissociated: ints[8],
		Annealed: ints[9], Decayed: ints[10], Vanished: ints[11],
	}, nil
}
