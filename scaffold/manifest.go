package scaffold

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/teranos/lcapgen/errors"
)

// ManifestName is the optional template manifest. It is read from the
// template folder root and never copied into generated output.
const ManifestName = ".lcapgen-template.toml"

// Manifest describes a template folder
type Manifest struct {
	// Description is shown by `lcapgen generate -v`
	Description string `toml:"description"`

	// Requires is a semver constraint on the generator version, e.g. ">= 1.2, < 2"
	Requires string `toml:"requires"`

	// Type overrides the component type classifier substituted for {{type}}
	Type string `toml:"type"`

	// Unknown lists keys present in the file that lcapgen does not understand
	Unknown []string `toml:"-"`
}

// LoadManifest reads the manifest in templateDir. A folder without a manifest
// yields a zero Manifest and found=false.
func LoadManifest(templateDir string) (m Manifest, found bool, err error) {
	path := filepath.Join(templateDir, ManifestName)
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		return Manifest{}, false, nil
	}

	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		return Manifest{}, true, errors.Wrapf(err, "failed to parse template manifest %s", path)
	}
	for _, key := range md.Undecoded() {
		m.Unknown = append(m.Unknown, key.String())
	}
	return m, true, nil
}

// CheckVersion verifies that the generator version satisfies Requires.
// Untagged builds ("dev" or empty) skip the check.
func (m Manifest) CheckVersion(current string) error {
	if m.Requires == "" || current == "" || current == "dev" {
		return nil
	}

	cur, err := semver.NewVersion(current)
	if err != nil {
		return errors.Wrapf(err, "invalid lcapgen version %s", current)
	}

	constraint, err := semver.NewConstraint(m.Requires)
	if err != nil {
		return errors.Wrapf(err, "invalid version constraint %q in template manifest", m.Requires)
	}

	if !constraint.Check(cur) {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrIncompatibleTemplate, "template requires lcapgen %s, but running %s", m.Requires, current),
			"upgrade lcapgen or use a template that supports %s", current)
	}
	return nil
}
