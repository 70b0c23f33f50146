package component

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teranos/lcapgen/errors"
)

// LoadRecords reads the component list from path.
// Files ending in .yaml or .yml are decoded as a YAML sequence, anything else as a JSON array.
func LoadRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WithHint(
				errors.Wrapf(err, "component list %s", path),
				"run `lcapgen extract` first, or pass --input")
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	var records []Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s as YAML", path)
		}
	default:
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s as JSON", path)
		}
	}
	return records, nil
}

// ParseRecords decodes a JSON array of records
func ParseRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "failed to parse component list")
	}
	return records, nil
}

type packageDescriptor struct {
	Name string `json:"name"`
}

// LoadPackageName reads the name field of a package.json descriptor
func LoadPackageName(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read package descriptor %s", path)
	}

	var pkg packageDescriptor
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", errors.Wrapf(err, "failed to parse package descriptor %s", path)
	}
	if pkg.Name == "" {
		return "", errors.WithHint(
			errors.Newf("package descriptor %s has no name", path),
			`add a "name" field to package.json`)
	}
	return pkg.Name, nil
}
