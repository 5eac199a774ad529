package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// JobEntry is one employment entry from the work-history YAML, in file order
// (most recent first).
type JobEntry struct {
	Role      string   `json:"role" yaml:"role"`
	Company   string   `json:"company" yaml:"company"`
	Location  string   `json:"location,omitempty" yaml:"location"`
	StartDate string   `json:"startDate" yaml:"start_date"`
	EndDate   string   `json:"endDate" yaml:"end_date"`
	WorkType  string   `json:"workType,omitempty" yaml:"work_type"`
	Bullets   []string `json:"bullets" yaml:"bullets"`
}

type workFile struct {
	Experience []JobEntry `yaml:"experience"`
}

// WorkStore loads the ordered employment history from a YAML file.
type WorkStore struct {
	path string
}

func NewWorkStore(path string) *WorkStore {
	return &WorkStore{path: path}
}

func (s *WorkStore) List() ([]JobEntry, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading work history: %w", err)
	}

	var f workFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing work history: %w", err)
	}
	return f.Experience, nil
}
