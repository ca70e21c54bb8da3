package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the flattened JSON form of a stored run.
type ExportData struct {
	RunMetadata
	Field [][]float64 `json:"field"`
}

// Export writes a run's metadata and field as indented JSON.
func (s *Store) Export(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	field, shape, err := s.LoadField(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		Field:       make([][]float64, shape[0]),
	}
	for r := 0; r < shape[0]; r++ {
		data.Field[r] = field[r*shape[1] : (r+1)*shape[1]]
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportFile writes a run's JSON export to a file.
func (s *Store) ExportFile(runID, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.Export(runID, file)
}
