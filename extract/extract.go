// Package extract converts a host application dump into components.json.
package extract

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/lcapgen/component"
	"github.com/teranos/lcapgen/errors"
	"github.com/teranos/lcapgen/internal/util/jsonutil"
)

// DefaultPrefix is prepended to component names that lack it
const DefaultPrefix = "lcap_"

var (
	logicsRef      = regexp.MustCompile(`\$logics\['app\.logics\.([^']+)'\]`)
	dataSourcesRef = regexp.MustCompile(`\bapp\.dataSources\b`)
)

// Options configures one extraction
type Options struct {
	// AppName is the shared-app namespace references are rewritten into.
	// Empty falls back to the dump's app name.
	AppName  string
	Frontend string
	Deny     []string
	Prefix   string
}

// Extract selects the business components of one frontend and rewrites them
// for use from a shared app. Denied and unnamed components are skipped.
// An empty result is errors.ErrNoComponents.
func Extract(app *App, opts Options, log *zap.SugaredLogger) ([]component.RawRecord, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	appName := opts.AppName
	if appName == "" {
		appName = app.Name
	}
	if appName == "" {
		return nil, errors.WithHint(
			errors.New("no app name to rewrite shared references into"),
			"pass --app or set extract.app_name in lcapgen.toml")
	}

	frontend, ok := app.Frontend(opts.Frontend)
	if !ok {
		return nil, errors.WithHintf(
			errors.Wrapf(errors.ErrFrontendNotFound, "frontend %q", opts.Frontend),
			"available frontends: %s", strings.Join(app.FrontendNames(), ", "))
	}

	deny := make(map[string]bool, len(opts.Deny))
	for _, d := range opts.Deny {
		deny[d] = true
	}

	var records []component.RawRecord
	for _, bc := range frontend.BusinessComponents {
		if bc.Name == "" {
			continue
		}
		if deny[bc.Name] {
			log.Debugw("Skipping denied component", "component", bc.Name)
			continue
		}

		nasl := bc.JSON
		if len(nasl) == 0 {
			nasl = []byte("null")
		}
		rec := component.RawRecord{
			Name:       PrefixedName(bc.Name, opts.Prefix),
			SourceCode: RewriteSource(bc.Vue, appName),
			Nasl:       nasl,
		}
		log.Debugw("Extracted component", "component", bc.Name, "name", rec.Name)
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, errors.Wrapf(errors.ErrNoComponents, "frontend %q", opts.Frontend)
	}
	return records, nil
}

// PrefixedName returns name with prefix prepended unless it already starts with it
func PrefixedName(name, prefix string) string {
	if strings.HasPrefix(name, prefix) {
		return name
	}
	return prefix + name
}

// RewriteSource points app-local logic and data source references at the shared app:
//
//	$logics['app.logics.X'] -> $logics['sharedApp.<appName>.logics.X']
//	app.dataSources         -> sharedApp.<appName>.dataSources
func RewriteSource(src, appName string) string {
	// $ in the replacement template must be doubled
	escaped := strings.ReplaceAll(appName, "$", "$$")
	src = logicsRef.ReplaceAllString(src, "$$logics['sharedApp."+escaped+".logics.${1}']")
	return dataSourcesRef.ReplaceAllLiteralString(src, "sharedApp."+appName+".dataSources")
}

// Marshal renders records as components.json: two-space indent, no HTML escaping
func Marshal(records []component.RawRecord) ([]byte, error) {
	data, err := jsonutil.MarshalNoEscapeIndent(records, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode components")
	}
	return data, nil
}

// WriteFile writes records to path, creating parent directories.
// Nothing is written when encoding fails.
func WriteFile(path string, records []component.RawRecord) error {
	data, err := Marshal(records)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "failed to create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
