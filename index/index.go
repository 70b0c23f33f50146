// Package index maintains the shared components index file.
//
// The index is append-only: existing lines keep their order and text, blank
// lines are dropped on rewrite, and each export line appears at most once.
// There is no locking; callers serialize writes.
package index

import (
	"os"
	"strings"

	"github.com/teranos/lcapgen/errors"
)

// Register appends line to the index at path unless the file already contains it.
// It reports whether the file was changed. A missing index file is
// errors.ErrIndexNotFound; the index is never created here.
func Register(path, line string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, errors.WithHint(
				errors.NewIndexNotFoundError("index file %s does not exist", path),
				"create the components index (an empty index.ts is enough) and re-run")
		}
		return false, errors.Wrapf(err, "failed to read index %s", path)
	}

	content := string(data)
	if strings.Contains(content, line) {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(Append(content, line)), 0644); err != nil {
		return false, errors.Wrapf(err, "failed to write index %s", path)
	}
	return true, nil
}

// Append returns content with blank lines removed and line added at the end,
// followed by a trailing newline.
func Append(content, line string) string {
	var lines []string
	for _, l := range strings.Split(content, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	lines = append(lines, line, "")
	return strings.Join(lines, "\n")
}
