// Package scaffold copies template folders into component folders.
package scaffold

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/teranos/lcapgen/errors"
)

// Result describes one instantiation
type Result struct {
	// Replaced is true when a previous component folder was deleted first
	Replaced bool
	// Files lists written files relative to the output folder, in walk order
	Files []string
}

// Instantiate recreates outDir from templateDir. Any existing outDir is deleted
// first, then every directory is mirrored and every file is read as text,
// passed through tokens and written. The manifest file is skipped.
func Instantiate(templateDir, outDir string, tokens Tokens) (Result, error) {
	var res Result

	info, err := os.Stat(templateDir)
	if err != nil || !info.IsDir() {
		return res, errors.NewTemplateNotFoundError("template folder %s does not exist", templateDir)
	}

	if _, err := os.Stat(outDir); err == nil {
		if err := os.RemoveAll(outDir); err != nil {
			return res, errors.Wrapf(err, "failed to remove %s", outDir)
		}
		res.Replaced = true
	}

	replacer := tokens.Replacer()

	err = filepath.WalkDir(templateDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(templateDir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(outDir, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if rel == ManifestName {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "failed to read template file %s", rel)
		}
		if err := os.WriteFile(target, []byte(replacer.Replace(string(content))), info.Mode().Perm()); err != nil {
			return errors.Wrapf(err, "failed to write %s", target)
		}
		res.Files = append(res.Files, rel)
		return nil
	})
	if err != nil {
		return res, errors.Wrapf(err, "instantiate %s", filepath.Base(templateDir))
	}
	return res, nil
}
