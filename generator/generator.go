// Package generator turns component records into component folders.
//
// Components are processed one at a time. A failing component is logged,
// reported and recorded, and the run moves on; earlier components are not
// rolled back. Registration in the index file is attempted only after the
// component folder has been written, so a missing index leaves a generated
// but unexported component.
package generator

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/lcapgen/component"
	"github.com/teranos/lcapgen/db"
	"github.com/teranos/lcapgen/errors"
	"github.com/teranos/lcapgen/index"
	"github.com/teranos/lcapgen/journal"
	"github.com/teranos/lcapgen/logger"
	"github.com/teranos/lcapgen/naming"
	"github.com/teranos/lcapgen/progress"
	"github.com/teranos/lcapgen/scaffold"
	"github.com/teranos/lcapgen/version"
)

// Outcome is the result for one component
type Outcome struct {
	Name       string
	CompName   string
	TagName    string
	Folder     string
	Replaced   bool
	Registered bool
	Dirty      []string // files with uncommitted changes that were overwritten
	IndexErr   error    // registration failed; the folder was still generated
	Err        error    // the component was not generated
	Duration   time.Duration
}

// OK reports whether the component folder was generated
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Report is the result of a run
type Report struct {
	RunID       string
	Outcomes    []Outcome
	Interrupted bool
	Duration    time.Duration
}

// Succeeded counts generated components
func (r *Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// Failed counts components that were not generated
func (r *Report) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// Generator runs batches of components. Runs on one Generator are serialized,
// so concurrent callers never interleave writes to the index file.
type Generator struct {
	mu sync.Mutex

	opts     Options
	resolver *scaffold.Resolver
	journal  *journal.Journal
	emitter  progress.Emitter
	log      *zap.SugaredLogger
	version  string
}

// New creates a generator resolving templates through resolver
func New(opts Options, resolver *scaffold.Resolver) *Generator {
	return &Generator{
		opts:     opts,
		resolver: resolver,
		emitter:  progress.Nop{},
		log:      logger.Named("generator"),
		version:  version.Version,
	}
}

// WithJournal records every run in j
func (g *Generator) WithJournal(j *journal.Journal) *Generator {
	g.journal = j
	return g
}

// WithEmitter reports progress to e
func (g *Generator) WithEmitter(e progress.Emitter) *Generator {
	if e == nil {
		e = progress.Nop{}
	}
	g.emitter = e
	return g
}

// WithLogger replaces the logger
func (g *Generator) WithLogger(l *zap.SugaredLogger) *Generator {
	if l != nil {
		g.log = l
	}
	return g
}

// WithVersion sets the generator version checked against template manifests
func (g *Generator) WithVersion(v string) *Generator {
	g.version = v
	return g
}

// IndexPath returns the index file the generator registers components in
func (g *Generator) IndexPath() string {
	return filepath.Join(g.opts.ComponentsDir, g.opts.IndexFile)
}

// Run generates every record in order. Per-component failures are reported in
// the returned Report and never returned as an error. An error is returned
// only when the run itself cannot proceed: the journal rejects the run, or ctx
// is cancelled (in which case the partial report is returned as well).
func (g *Generator) Run(ctx context.Context, records []component.Record) (*Report, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	start := time.Now()
	report := &Report{}

	g.emitter.EmitStage("generate", fmt.Sprintf("%d components with %s template", len(records), g.opts.Meta.Framework))

	if g.journal != nil {
		// journal writes outlive cancellation so an interrupted run is still recorded
		id, err := g.journal.BeginRun(context.WithoutCancel(ctx), journal.RunInfo{
			Framework: g.opts.Meta.Framework,
			Input:     g.opts.Input,
			Root:      g.opts.Root,
			Trigger:   g.opts.Trigger,
		})
		if err != nil {
			g.emitter.EmitError("journal", err)
			return nil, err
		}
		report.RunID = id
	}
	log := g.log
	if report.RunID != "" {
		log = log.With(logger.FieldRunID, report.RunID)
	}

	var guard *scaffold.DirtyGuard
	if g.opts.WarnDirty {
		var err error
		if guard, err = scaffold.OpenDirtyGuard(g.opts.ComponentsDir); err != nil {
			log.Warnw("Cannot check for uncommitted changes", logger.FieldError, err)
		}
	}

	for i, rec := range records {
		if ctx.Err() != nil {
			report.Interrupted = true
			break
		}

		out := g.generate(ctx, log, guard, rec)
		report.Outcomes = append(report.Outcomes, out)

		g.emitter.EmitComponent(event(i+1, len(records), out))
		g.record(ctx, log, report.RunID, out)
	}
	report.Duration = time.Since(start)

	status := journal.StatusCompleted
	if report.Interrupted {
		status = journal.StatusInterrupted
	}
	if g.journal != nil {
		err := g.journal.FinishRun(context.WithoutCancel(ctx), report.RunID, journal.Summary{
			Status:    status,
			Total:     len(records),
			Succeeded: report.Succeeded(),
			Failed:    report.Failed(),
		})
		if err != nil {
			log.Warnw("Failed to close journal run", logger.FieldError, err)
		}
	}

	g.emitter.EmitComplete(progress.Summary{
		RunID:     report.RunID,
		Total:     len(records),
		Succeeded: report.Succeeded(),
		Failed:    report.Failed(),
		Duration:  report.Duration,
	})
	log.Infow("Run finished",
		"total", len(records),
		"succeeded", report.Succeeded(),
		"failed", report.Failed(),
		logger.FieldDurationMS, report.Duration.Milliseconds())

	if report.Interrupted {
		return report, errors.Wrapf(ctx.Err(), "interrupted after %d of %d components", len(report.Outcomes), len(records))
	}
	return report, nil
}

// generate produces one component folder and registers it
func (g *Generator) generate(ctx context.Context, log *zap.SugaredLogger, guard *scaffold.DirtyGuard, rec component.Record) Outcome {
	start := time.Now()
	out := Outcome{Name: rec.Name}

	log = log.With(logger.FieldComponent, rec.Name)
	fail := func(err error) Outcome {
		out.Err = err
		out.Duration = time.Since(start)
		log.Errorw("Failed to create component", logger.FieldError, err)
		return out
	}

	templateDir, err := g.resolver.Folder(ctx, g.opts.Meta.Framework)
	if err != nil {
		return fail(err)
	}

	manifest, found, err := scaffold.LoadManifest(templateDir)
	if err != nil {
		return fail(err)
	}
	if found {
		if err := manifest.CheckVersion(g.version); err != nil {
			return fail(err)
		}
		if len(manifest.Unknown) > 0 {
			log.Warnw("Template manifest has unknown keys", logger.FieldTemplate, templateDir, "keys", manifest.Unknown)
		}
	}
	compType := g.opts.ComponentType
	if manifest.Type != "" {
		compType = manifest.Type
	}

	names := naming.Derive(rec.Name, g.opts.Meta.Framework, g.opts.TagPrefixes)
	out.CompName, out.TagName = names.Display, names.Tag
	out.Folder = filepath.Join(g.opts.ComponentsDir, names.Tag)
	log = log.With(logger.FieldCompName, names.Display, logger.FieldTagName, names.Tag)

	if dirty, err := guard.Changes(out.Folder); err != nil {
		log.Debugw("Cannot read git status", logger.FieldError, err)
	} else if len(dirty) > 0 {
		out.Dirty = dirty
		log.Warnw("Overwriting uncommitted changes", logger.FieldFolder, out.Folder, "files", dirty)
	}

	code, stats := g.opts.Cleanup.Apply(rec.SourceCode, names.Tag)
	log.Debugw("Source cleaned", "mixins", stats.Mixins, "guards", stats.Guards, "meta", stats.Meta)

	res, err := scaffold.Instantiate(templateDir, out.Folder, scaffold.Tokens{
		PkgName:  g.opts.Meta.Name,
		TagName:  names.Tag,
		CompName: names.Display,
		Title:    rec.Nasl.Title,
		Type:     compType,
		Props:    RenderProps(rec.Nasl.Params),
		Code:     code,
	})
	if err != nil {
		return fail(err)
	}
	out.Replaced = res.Replaced
	if res.Replaced {
		log.Infow("Component folder existed, recreated", logger.FieldFolder, out.Folder)
	}
	log.Debugw("Template instantiated", logger.FieldFolder, out.Folder, logger.FieldCount, len(res.Files))

	out.Registered, err = index.Register(g.IndexPath(), naming.ExportLine(names.Display, names.Tag))
	switch {
	case err != nil:
		out.IndexErr = err
		log.Errorw("Component generated but not exported", logger.FieldIndex, g.IndexPath(), logger.FieldError, err)
	case !out.Registered:
		log.Infow("Component already exported, skipping registration", logger.FieldIndex, g.IndexPath())
	}

	out.Duration = time.Since(start)
	log.Infow("Component created", logger.FieldFolder, out.Folder)
	return out
}

// record writes one outcome to the journal. Journal failures never fail the component.
func (g *Generator) record(ctx context.Context, log *zap.SugaredLogger, runID string, out Outcome) {
	if g.journal == nil {
		return
	}

	entry := journal.Entry{
		Name:       out.Name,
		CompName:   out.CompName,
		TagName:    out.TagName,
		Folder:     out.Folder,
		Status:     journal.ComponentGenerated,
		Registered: out.Registered,
		DurationMS: out.Duration.Milliseconds(),
	}
	if out.Err != nil {
		entry.Status = journal.ComponentFailed
		entry.Error = out.Err.Error()
	} else if out.IndexErr != nil {
		entry.Error = out.IndexErr.Error()
	}

	if err := g.journal.RecordComponent(context.WithoutCancel(ctx), runID, entry); err != nil {
		if db.IsDatabaseClosed(err) {
			log.Debugw("Journal closed, outcome not recorded", logger.FieldComponent, out.Name)
			return
		}
		log.Warnw("Failed to record component", logger.FieldComponent, out.Name, logger.FieldError, err)
	}
}

func event(i, total int, out Outcome) progress.ComponentEvent {
	ev := progress.ComponentEvent{
		Index:      i,
		Total:      total,
		Name:       out.Name,
		CompName:   out.CompName,
		TagName:    out.TagName,
		Folder:     out.Folder,
		Replaced:   out.Replaced,
		Registered: out.Registered,
	}
	if out.Err != nil {
		ev.Error = out.Err.Error()
	}
	if out.IndexErr != nil {
		ev.IndexError = out.IndexErr.Error()
	}
	return ev
}
