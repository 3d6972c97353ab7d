// Package categories manages the association's category list, loaded from a
// YAML file, used for the category keyboard and to map extractor output onto
// known categories.
package categories

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"fjacquet/flatbot/internal/logging"
)

// Category is one configured category with the keywords that map raw
// extractor/receipt text onto it.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Defaults used when no categories file is present.
var Defaults = []Category{
	{Name: "Maintenance", Keywords: []string{"maintenance", "amc"}},
	{Name: "Repairs", Keywords: []string{"repair", "plumb", "paint"}},
	{Name: "Utilities", Keywords: []string{"electricity", "water", "power", "bescom"}},
	{Name: "Security", Keywords: []string{"security", "guard"}},
	{Name: "Cleaning", Keywords: []string{"cleaning", "housekeeping"}},
	{Name: "Salary", Keywords: []string{"salary", "wages"}},
	{Name: "Other", Keywords: nil},
}

// Store loads the category list from disk.
type Store struct {
	file string
	log  logging.Logger
}

// NewStore creates a store for the given categories file.
func NewStore(file string, log logging.Logger) *Store {
	if log == nil {
		log = logging.GetLogger()
	}
	return &Store{file: file, log: log}
}

// Load reads the category list. A missing file is not an error: the defaults
// are returned so the bot works out of the box.
func (s *Store) Load() ([]Category, error) {
	path := s.file
	if path == "" {
		path = "categories.yaml"
	}
	if !filepath.IsAbs(path) {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			s.log.Debug("Categories file not found, using defaults",
				logging.Field{Key: "file", Value: path})
			return Defaults, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults, nil
		}
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	var cats []Category
	if err := yaml.Unmarshal(data, &cats); err != nil {
		return nil, fmt.Errorf("error parsing categories file: %w", err)
	}
	if len(cats) == 0 {
		return Defaults, nil
	}
	return cats, nil
}

// Names returns just the category names, in configured order.
func Names(cats []Category) []string {
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	return names
}

// Match maps raw text onto a configured category by name equality first, then
// keyword containment, both case-insensitive. Returns "" when nothing matches.
func Match(cats []Category, raw string) string {
	needle := strings.ToLower(strings.TrimSpace(raw))
	if needle == "" {
		return ""
	}

	for _, c := range cats {
		if strings.EqualFold(c.Name, needle) {
			return c.Name
		}
	}
	for _, c := range cats {
		for _, kw := range c.Keywords {
			if kw != "" && strings.Contains(needle, strings.ToLower(kw)) {
				return c.Name
			}
		}
	}
	return ""
}
