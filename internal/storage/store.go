package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/lenslab/internal/lens"
)

// Store persists rendered fields as one directory per run: metadata.json
// next to field.csv, plus optional named curve files.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Preset     string             `json:"preset"`
	Quantity   string             `json:"quantity"`
	Timestamp  time.Time          `json:"timestamp"`
	Rows       int                `json:"rows"`
	Cols       int                `json:"cols"`
	PixelScale float64            `json:"pixel_scale"`
	Sub        int                `json:"sub"`
	Summary    map[string]float64 `json:"summary"`
}

// SaveField writes a rendered native-resolution field with its metadata and
// returns the run ID.
func (s *Store) SaveField(preset, quantity string, g *lens.Grid, field lens.Array, summary map[string]float64) (string, error) {
	if len(field) != g.Len() {
		return "", fmt.Errorf("%w: field has %d values, grid holds %d",
			lens.ErrFieldLength, len(field), g.Len())
	}

	runID := fmt.Sprintf("%s_%d", quantity, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Preset:     preset,
		Quantity:   quantity,
		Timestamp:  time.Now(),
		Rows:       g.Shape()[0],
		Cols:       g.Shape()[1],
		PixelScale: g.PixelScales()[0],
		Sub:        g.SubSize(),
		Summary:    summary,
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

	if err := writeFieldCSV(filepath.Join(runDir, "field.csv"), field, meta.Cols); err != nil {
		return "", err
	}
	return runID, nil
}

// SaveCurve writes a named (y, x) curve CSV into an existing run directory.
func (s *Store) SaveCurve(runID, name string, curve lens.Coords) error {
	file, err := os.Create(filepath.Join(s.baseDir, runID, name+".csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"y", "x"}); err != nil {
		return err
	}
	for _, c := range curve {
		row := []string{
			strconv.FormatFloat(c.Y, 'f', 6, 64),
			strconv.FormatFloat(c.X, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeFieldCSV(path string, field lens.Array, cols int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	row := make([]string, cols)
	for start := 0; start < len(field); start += cols {
		for j := 0; j < cols; j++ {
			row[j] = strconv.FormatFloat(field[start+j], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List reads the metadata of every run under the base directory. Directories
// without readable metadata are skipped.
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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

// Load reads a single run's metadata.
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

// LoadField reads a run's field back into a flat array with its shape.
func (s *Store) LoadField(runID string) (lens.Array, [2]int, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "field.csv"))
	if err != nil {
		return nil, [2]int{}, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, [2]int{}, err
	}
	if len(records) == 0 {
		return lens.Array{}, [2]int{}, nil
	}

	cols := len(records[0])
	field := make(lens.Array, 0, len(records)*cols)
	for _, record := range records {
		for _, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, [2]int{}, err
			}
			field = append(field, v)
		}
	}
	return field, [2]int{len(records), cols}, nil
}
