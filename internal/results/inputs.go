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

// Input is the document handed to a benchmark program.
type Input struct {
	Size        int64           `json:"size"`
	Repetitions int             `json:"repetitions,omitempty"`
	Warmup      int             `json:"warmup,omitempty"`
	Data        json.RawMessage `json:"data"`
}

// InputFile pairs an input document with the file it was read from.
type InputFile struct {
	Path  string
	Input Input
}

// Name is the file name measurements for this input are stored under.
func (f InputFile) Name() string {
	return filepath.Base(f.Path)
}

// ReadInput reads and validates one input document.
func ReadInput(path string) (Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("read input %s: %w", path, err)
	}
	if err := validate(inputSchema, raw); err != nil {
		return Input{}, fmt.Errorf("%w: %s: %v", ErrInvalidInput, path, err)
	}
	var in Input
	if err := json.Unmarshal(raw, &in); err != nil {
		return Input{}, fmt.Errorf("%w: %s: %v", ErrInvalidInput, path, err)
	}
	return in, nil
}

// LoadInputs reads <root>/inputs/*.json ordered by size, then file name.
func LoadInputs(root string) ([]InputFile, error) {
	dir := filepath.Join(root, InputsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: no input directory %s", ErrRootNotFound, dir)
		}
		return nil, fmt.Errorf("read inputs: %w", err)
	}

	var files []InputFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		in, err := ReadInput(path)
		if err != nil {
			return nil, err
		}
		files = append(files, InputFile{Path: path, Input: in})
	}
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Input.Size != files[j].Input.Size {
			return files[i].Input.Size < files[j].Input.Size
		}
		return files[i].Name() < files[j].Name()
	})
	return files, nil
}

// WriteInput stores an input document at path.
func WriteInput(path string, in Input) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal input: %w", err)
	}
	if err := validate(inputSchema, data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return writeAtomic(path, append(data, '\n'))
}
