// Package pairs holds name pairs to compare: the built-in quick test
// scenarios and pair lists loaded from YAML/JSON files.
package pairs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samvad-hq/namematch-console/internal/domain"
	"gopkg.in/yaml.v3"
)

// Pair is a single comparison input. Expect is optional.
type Pair struct {
	ID     string         `json:"id" yaml:"id"`
	Label  string         `json:"label,omitempty" yaml:"label,omitempty"`
	Name1  string         `json:"name1" yaml:"name1"`
	Name2  string         `json:"name2" yaml:"name2"`
	Expect domain.Verdict `json:"expect,omitempty" yaml:"expect,omitempty"`
}

// HasExpectation reports whether the pair declares an expected verdict.
func (p Pair) HasExpectation() bool { return p.Expect != "" }

type pairFile struct {
	Pairs []Pair `json:"pairs" yaml:"pairs"`
}

var scenarios = []Pair{
	{ID: "similar", Label: "Similar Names", Name1: "John Smith", Name2: "JOHNSMITH123", Expect: domain.VerdictYes},
	{ID: "different", Label: "Different Names", Name1: "Alice Johnson", Name2: "Bob Wilson", Expect: domain.VerdictNo},
	{ID: "nickname", Label: "Nicknames", Name1: "Michael Johnson", Name2: "Mike Johnson"},
}

// Scenarios returns a copy of the built-in quick test scenarios.
func Scenarios() []Pair {
	out := make([]Pair, len(scenarios))
	copy(out, scenarios)
	return out
}

// ScenarioByID returns the built-in scenario with the given id.
func ScenarioByID(id string) (Pair, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return Pair{}, false
}

// LoadFile reads a pair list from a YAML or JSON file.
func LoadFile(path string) ([]Pair, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("pairs file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pairs file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read pairs file: %w", err)
	}

	parsed, err := parsePairs(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(parsed.Pairs) == 0 {
		return nil, errors.New("pairs file contains no pairs entries")
	}

	seen := make(map[string]struct{}, len(parsed.Pairs))
	out := make([]Pair, len(parsed.Pairs))
	for i := range parsed.Pairs {
		p := sanitizePair(parsed.Pairs[i], i)
		if err := validatePair(p); err != nil {
			return nil, fmt.Errorf("pairs[%d]: %w", i, err)
		}
		if _, exists := seen[p.ID]; exists {
			return nil, fmt.Errorf("duplicate pair id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
		out[i] = p
	}
	return out, nil
}

type unmarshalFn func([]byte, any) error

func parsePairs(data []byte, ext string) (pairFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		if pf, err := unmarshalPairs(d.name, data, d.fn); err == nil {
			return pf, nil
		}
	}

	return pairFile{}, errors.New("pairs file format not recognized (expected YAML or JSON)")
}

func unmarshalPairs(name string, data []byte, fn unmarshalFn) (pairFile, error) {
	var pf pairFile
	if err := fn(data, &pf); err != nil {
		return pairFile{}, fmt.Errorf("decode %s pairs: %w", name, err)
	}
	return pf, nil
}

func sanitizePair(p Pair, idx int) Pair {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		p.ID = fmt.Sprintf("pair-%d", idx+1)
	}
	p.Label = strings.TrimSpace(p.Label)
	p.Name1 = strings.TrimSpace(p.Name1)
	p.Name2 = strings.TrimSpace(p.Name2)
	p.Expect = domain.Verdict(strings.ToLower(strings.TrimSpace(string(p.Expect))))
	return p
}

func validatePair(p Pair) error {
	if p.Name1 == "" || p.Name2 == "" {
		return fmt.Errorf("name1 and name2 are required for pair %q", p.ID)
	}
	if p.Expect != "" {
		if _, err := domain.ParseVerdict(string(p.Expect)); err != nil {
			return fmt.Errorf("pair %q: %w", p.ID, err)
		}
	}
	return nil
}
