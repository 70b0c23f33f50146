package generator

import (
	"github.com/teranos/lcapgen/cleanup"
	"github.com/teranos/lcapgen/component"
	"github.com/teranos/lcapgen/config"
	"github.com/teranos/lcapgen/journal"
)

// Options fixes everything that is constant for a run
type Options struct {
	Meta          component.MetaInfo
	ComponentType string
	TagPrefixes   []string

	// ComponentsDir holds one folder per component plus the index file
	ComponentsDir string
	IndexFile     string

	Cleanup   cleanup.Pipeline
	WarnDirty bool

	// Input, Root and Trigger are recorded in the journal
	Input   string
	Root    string
	Trigger string
}

// OptionsFromConfig builds run options from the loaded configuration
func OptionsFromConfig(cfg *config.Config, pkgName string) Options {
	return Options{
		Meta:          component.MetaInfo{Framework: cfg.Framework, Name: pkgName},
		ComponentType: cfg.ComponentType,
		TagPrefixes:   cfg.TagPrefixes,
		ComponentsDir: cfg.ComponentsPath(),
		IndexFile:     cfg.IndexFile,
		Cleanup: cleanup.Pipeline{
			MixinsFlag:       cfg.Cleanup.MixinsFlag,
			DataSourceHelper: cfg.Cleanup.DataSourceHelper,
		},
		WarnDirty: cfg.Git.WarnDirty,
		Input:     cfg.InputPath(),
		Root:      cfg.Root,
		Trigger:   journal.TriggerGenerate,
	}
}
