package topics

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of a topics file.
type fileConfig struct {
	Topics []fileTopic `yaml:"topics"`
}

type fileTopic struct {
	Name       string `yaml:"name"`
	Collection string `yaml:"collection"`
	Query      string `yaml:"query"`
}

// LoadFile reads and validates a YAML topics file. A valid file replaces
// the built-in topic set entirely.
func LoadFile(path string) ([]Topic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(cfg.Topics) == 0 {
		return nil, fmt.Errorf("%s must define at least one topic", path)
	}

	seen := make(map[string]bool, len(cfg.Topics))
	list := make([]Topic, 0, len(cfg.Topics))
	for i, entry := range cfg.Topics {
		if entry.Name == "" {
			return nil, fmt.Errorf("topic entry %d is missing 'name'", i+1)
		}
		if entry.Collection == "" {
			return nil, fmt.Errorf("topic %q is missing 'collection'", entry.Name)
		}
		if entry.Query == "" {
			return nil, fmt.Errorf("topic %q is missing 'query'", entry.Name)
		}
		if seen[entry.Name] {
			return nil, fmt.Errorf("duplicate topic name %q", entry.Name)
		}
		seen[entry.Name] = true
		list = append(list, Topic{
			Name:       entry.Name,
			Collection: entry.Collection,
			Query:      entry.Query,
		})
	}

	return list, nil
}
