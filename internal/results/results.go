// internal/results/results.go
// Package results reads and writes the measurement files kept under a
// results root. Each dataset key owns one directory, <root>/<key>, holding
// one JSON measurement document per benchmarked input.
package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// InputsDir is the directory under the results root that holds input documents.
const InputsDir = "inputs"

var (
	ErrNoKeys             = errors.New("no dataset keys given")
	ErrInvalidKey         = errors.New("invalid dataset key")
	ErrRootNotFound       = errors.New("results root not found")
	ErrDatasetNotFound    = errors.New("dataset not found")
	ErrInvalidMeasurement = errors.New("invalid measurement document")
	ErrInvalidInput       = errors.New("invalid input document")
)

// Measurement is the document a benchmark program writes for one input.
type Measurement struct {
	Key         string          `json:"key,omitempty"`
	Size        int64           `json:"size"`
	Repetitions int             `json:"repetitions,omitempty"`
	SamplesNs   []float64       `json:"samples_ns"`
	Input       json.RawMessage `json:"input,omitempty"`
	Output      json.RawMessage `json:"output,omitempty"`
	Timestamp   string          `json:"timestamp,omitempty"`
}

// Point holds every sample recorded for one input size.
type Point struct {
	Size    int64
	Samples []float64
	Files   []string
}

// Dataset is the sorted set of points recorded for one key.
type Dataset struct {
	Key    string
	Dir    string
	Points []Point
}

// Point returns the point recorded for size.
func (d Dataset) Point(size int64) (Point, bool) {
	i := sort.Search(len(d.Points), func(i int) bool { return d.Points[i].Size >= size })
	if i < len(d.Points) && d.Points[i].Size == size {
		return d.Points[i], true
	}
	return Point{}, false
}

// Load reads the datasets named by keys from root, preserving key order.
func Load(root string, keys []string) ([]Dataset, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("stat results root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, root)
	}

	seen := make(map[string]bool, len(keys))
	datasets := make([]Dataset, 0, len(keys))
	for _, key := range keys {
		if err := ValidateKey(key); err != nil {
			return nil, err
		}
		if seen[key] {
			return nil, fmt.Errorf("%w: %q listed twice", ErrInvalidKey, key)
		}
		seen[key] = true

		ds, err := LoadDataset(root, key)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, ds)
	}
	return datasets, nil
}

// LoadDataset reads every measurement file of a single key.
func LoadDataset(root, key string) (Dataset, error) {
	dir := filepath.Join(root, key)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Dataset{}, fmt.Errorf("%w: %q (no directory %s)", ErrDatasetNotFound, key, dir)
		}
		return Dataset{}, fmt.Errorf("read dataset %q: %w", key, err)
	}

	bySize := make(map[int64]*Point)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		m, err := ReadMeasurement(path)
		if err != nil {
			return Dataset{}, err
		}
		p, ok := bySize[m.Size]
		if !ok {
			p = &Point{Size: m.Size}
			bySize[m.Size] = p
		}
		p.Samples = append(p.Samples, m.SamplesNs...)
		p.Files = append(p.Files, path)
	}
	if len(bySize) == 0 {
		return Dataset{}, fmt.Errorf("%w: %q (no measurement files in %s)", ErrDatasetNotFound, key, dir)
	}

	ds := Dataset{Key: key, Dir: dir, Points: make([]Point, 0, len(bySize))}
	for _, p := range bySize {
		ds.Points = append(ds.Points, *p)
	}
	sort.Slice(ds.Points, func(i, j int) bool { return ds.Points[i].Size < ds.Points[j].Size })
	return ds, nil
}

// ReadMeasurement reads and validates one measurement document.
func ReadMeasurement(path string) (Measurement, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Measurement{}, fmt.Errorf("read measurement %s: %w", path, err)
	}
	if err := validate(measurementSchema, raw); err != nil {
		return Measurement{}, fmt.Errorf("%w: %s: %v", ErrInvalidMeasurement, path, err)
	}
	var m Measurement
	if err := json.Unmarshal(raw, &m); err != nil {
		return Measurement{}, fmt.Errorf("%w: %s: %v", ErrInvalidMeasurement, path, err)
	}
	return m, nil
}

// Write stores m at path as indented JSON. The file is replaced atomically.
func Write(path string, m Measurement) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal measurement: %w", err)
	}
	if err := validate(measurementSchema, data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMeasurement, err)
	}
	return writeAtomic(path, append(data, '\n'))
}

// Sizes returns the sorted union of the sizes recorded by datasets.
func Sizes(datasets []Dataset) []int64 {
	seen := make(map[int64]bool)
	var sizes []int64
	for _, ds := range datasets {
		for _, p := range ds.Points {
			if !seen[p.Size] {
				seen[p.Size] = true
				sizes = append(sizes, p.Size)
			}
		}
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })
	return sizes
}

// ValidateKey rejects keys that cannot name a directory directly under the root.
func ValidateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	case key == InputsDir, key == ".", key == "..":
		return fmt.Errorf("%w: %q is reserved", ErrInvalidKey, key)
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidKey, key)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
