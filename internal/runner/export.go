package runner

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteFile exports the run results as indented JSON.
func (r Results) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}
