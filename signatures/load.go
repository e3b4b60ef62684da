package signatures

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a hash-to-label mapping from a JSON or YAML file, chosen by
// extension. The expected shape is a flat mapping:
//
//	{"44d88612fea8a8f3...": "eicar_test_file"}
func LoadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signature file: %w", err)
	}

	entries := make(map[string]string)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parse signature yaml %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parse signature json %s: %w", path, err)
		}
	}
	return entries, nil
}
