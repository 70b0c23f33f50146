package extract

import (
	"encoding/json"
	"os"

	"github.com/teranos/lcapgen/errors"
)

// HostDump is a JSON export of the low-code application. Each business
// component carries its serialized source ("vue") and metadata ("json").
//
// Both {"app": {...}} and the bare app object are accepted.
type HostDump struct {
	App *App `json:"app"`
}

// App is the application object of a host dump
type App struct {
	Name          string         `json:"name"`
	FrontendTypes []FrontendType `json:"frontendTypes"`
}

// FrontendType is one frontend target (pc, h5, ...)
type FrontendType struct {
	Name               string              `json:"name"`
	BusinessComponents []BusinessComponent `json:"businessComponents"`
}

// BusinessComponent is one platform component as exported by the host
type BusinessComponent struct {
	Name string          `json:"name"`
	Vue  string          `json:"vue"`
	JSON json.RawMessage `json:"json"`
}

// Frontend returns the frontend named name
func (a *App) Frontend(name string) (*FrontendType, bool) {
	for i := range a.FrontendTypes {
		if a.FrontendTypes[i].Name == name {
			return &a.FrontendTypes[i], true
		}
	}
	return nil, false
}

// FrontendNames lists the frontends in the dump
func (a *App) FrontendNames() []string {
	names := make([]string, 0, len(a.FrontendTypes))
	for _, f := range a.FrontendTypes {
		names = append(names, f.Name)
	}
	return names
}

// ParseDump decodes a host dump
func ParseDump(data []byte) (*App, error) {
	var wrapped HostDump
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, errors.Wrap(err, "failed to parse host dump")
	}
	if wrapped.App != nil {
		return wrapped.App, nil
	}

	var app App
	if err := json.Unmarshal(data, &app); err != nil {
		return nil, errors.Wrap(err, "failed to parse host dump")
	}
	return &app, nil
}

// LoadDump reads and decodes a host dump file
func LoadDump(path string) (*App, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read host dump %s", path)
	}
	app, err := ParseDump(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return app, nil
}
