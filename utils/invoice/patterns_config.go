package invoice

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ParsePatterns overlays YAML onto the default tables. Lists in the YAML
// replace the default list, sections are replaced per name, and limits are
// merged field by field. Unknown keys are an error.
func ParsePatterns(data []byte) (PatternLibrary, error) {
	p := DefaultPatterns()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return PatternLibrary{}, fmt.Errorf("failed to parse patterns: %w", err)
	}
	return p, nil
}

// LoadPatternFile reads a YAML override file.
func LoadPatternFile(path string) (PatternLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PatternLibrary{}, fmt.Errorf("failed to read patterns file: %w", err)
	}
	return ParsePatterns(data)
}

// LoadLibrary compiles the library from path, or returns the default
// library when path is empty.
func LoadLibrary(path string) (*Library, error) {
	if path == "" {
		return DefaultLibrary(), nil
	}
	p, err := LoadPatternFile(path)
	if err != nil {
		return nil, err
	}
	lib, err := p.Compile()
	if err != nil {
		return nil, fmt.Errorf("invalid patterns in %s: %w", path, err)
	}
	return lib, nil
}

// YAML renders the tables in the format ParsePatterns accepts.
func (p PatternLibrary) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("failed to encode patterns: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
