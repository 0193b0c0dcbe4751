package candidate

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

var educationType = reflect.TypeOf(EducationNone)

// Decode converts a loosely typed record into a Candidate.
// Numbers are accepted for string fields and vice versa. Unknown keys are
// rejected, which also covers attempts to set derived fields like score.
func Decode(raw map[string]any) (Candidate, error) {
	var c Candidate
	if err := decode(raw, &c); err != nil {
		return Candidate{}, err
	}

	c.ID = strings.TrimSpace(c.ID)
	if c.ID == "" {
		return Candidate{}, fmt.Errorf("candidate %q: id is required", c.Name)
	}

	return c, nil
}

// DecodeAll decodes every record and checks that ids are unique.
func DecodeAll(records []map[string]any) ([]Candidate, error) {
	out := make([]Candidate, 0, len(records))
	seen := make(map[string]int, len(records))

	for idx, raw := range records {
		c, err := Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", idx, err)
		}
		if prev, ok := seen[c.ID]; ok {
			return nil, fmt.Errorf("record %d: duplicate candidate id %q (first seen in record %d)", idx, c.ID, prev)
		}
		seen[c.ID] = idx
		out = append(out, c)
	}

	return out, nil
}

// DecodeCriteria converts a loosely typed criteria section into JobCriteria.
func DecodeCriteria(raw map[string]any) (JobCriteria, error) {
	var criteria JobCriteria
	if raw == nil {
		return criteria, nil
	}
	if err := decode(raw, &criteria); err != nil {
		return JobCriteria{}, fmt.Errorf("criteria: %w", err)
	}
	return criteria, nil
}

// Load reads a JSON array of candidate records from path.
func Load(path string) ([]Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading candidates file %q: %w", path, err)
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing candidates file %q: %w", path, err)
	}

	candidates, err := DecodeAll(records)
	if err != nil {
		return nil, fmt.Errorf("candidates file %q: %w", path, err)
	}

	return candidates, nil
}

func decode(input any, result any) error {
	cfg := &mapstructure.DecoderConfig{
		DecodeHook:       educationHook,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           result,
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

func educationHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != educationType {
		return data, nil
	}
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.String {
		return data, nil
	}
	return ParseEducation(v.String()), nil
}
