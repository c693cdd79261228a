package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/2ellamills/fitness-class/internal/model"
)

// File loads a fixed catalog from a YAML or JSON document.  The format is
// picked by extension; anything other than .json is parsed as YAML.
type File struct {
	Path string
}

type fileDoc struct {
	Classes []model.ClassOffering `json:"classes" yaml:"classes"`
}

func (f File) Seed(time.Time) ([]model.ClassOffering, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", f.Path, err)
	}
	classes, err := Parse(b, strings.EqualFold(filepath.Ext(f.Path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", f.Path, err)
	}
	return classes, nil
}

// Parse decodes a catalog document and validates every class.
func Parse(b []byte, isJSON bool) ([]model.ClassOffering, error) {
	var doc fileDoc
	var err error
	if isJSON {
		err = json.Unmarshal(b, &doc)
	} else {
		err = yaml.Unmarshal(b, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	seen := make(map[string]bool, len(doc.Classes))
	for i := range doc.Classes {
		c := &doc.Classes[i]
		if err := validate(c); err != nil {
			return nil, fmt.Errorf("class %d: %w", i, err)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("class %d: duplicate id %q", i, c.ID)
		}
		seen[c.ID] = true
		if c.Participants == nil {
			c.Participants = []string{}
		}
	}
	return doc.Classes, nil
}

func validate(c *model.ClassOffering) error {
	switch {
	case c.ID == "":
		return fmt.Errorf("missing id")
	case c.Date.IsZero():
		return fmt.Errorf("%s: missing date", c.ID)
	case c.Capacity <= 0:
		return fmt.Errorf("%s: capacity must be positive", c.ID)
	case len(c.Participants) > c.Capacity:
		return fmt.Errorf("%s: %d participants exceed capacity %d", c.ID, len(c.Participants), c.Capacity)
	}
	if _, err := time.Parse("15:04", c.Time); err != nil {
		return fmt.Errorf("%s: time %q is not HH:MM", c.ID, c.Time)
	}
	return nil
}
