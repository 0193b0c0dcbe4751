package candidate

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"
)

// Contacted is the list of candidates that already received a message.
// It is kept in a JSON file and used to skip them on later runs.
type Contacted struct {
	Items []*ContactedCandidate
}

type ContactedCandidate struct {
	ID          string
	Name        string
	Email       string
	ContactedAt time.Time
}

// LoadContacted reads the contacted list from path. A missing or empty file
// yields an empty list.
func LoadContacted(path string) (*Contacted, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Contacted{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &Contacted{}, nil
	}

	var contacted Contacted
	if err := json.NewDecoder(file).Decode(&contacted); err != nil {
		return nil, err
	}
	return &contacted, nil
}

// NewContacted builds entries for the given candidates stamped with at.
func NewContacted(at time.Time, candidates ...Candidate) *Contacted {
	contacted := &Contacted{}
	for _, c := range candidates {
		contacted.Items = append(contacted.Items, &ContactedCandidate{
			ID:          c.ID,
			Name:        c.Name,
			Email:       c.Email,
			ContactedAt: at.UTC(),
		})
	}
	return contacted
}

func (c *Contacted) Append(s *Contacted) {
	if s == nil {
		return
	}
	c.Items = append(c.Items, s.Items...)
}

func (c *Contacted) IDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (c *Contacted) Len() int {
	return len(c.Items)
}

func (c *Contacted) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
