package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-getter"
	"go.uber.org/zap"

	"github.com/teranos/lcapgen/errors"
)

// FolderSuffix is appended to the framework identifier to name a template folder
const FolderSuffix = "-component"

// Resolver locates <framework>-component template folders.
//
// With a source set, the template tree is fetched once with go-getter (git
// URLs, archives, S3, local paths, ...) into a temporary directory and
// resolved there. Close removes the temporary directory.
type Resolver struct {
	dir    string
	source string
	log    *zap.SugaredLogger

	fetchedRoot string
	tempDir     string
}

// NewResolver returns a resolver over the local template root dir, or over
// source when it is non-empty. A go-getter "//subdir" suffix on source
// selects a folder inside the fetched tree.
func NewResolver(dir, source string, log *zap.SugaredLogger) *Resolver {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Resolver{dir: dir, source: source, log: log}
}

// Root returns the directory that holds the template folders, fetching the
// source on first use.
func (r *Resolver) Root(ctx context.Context) (string, error) {
	if r.source == "" {
		return r.dir, nil
	}
	if r.fetchedRoot != "" {
		return r.fetchedRoot, nil
	}
	if err := r.fetch(ctx); err != nil {
		return "", err
	}
	return r.fetchedRoot, nil
}

// Folder returns the template folder for framework.
// A missing folder is errors.ErrTemplateNotFound.
func (r *Resolver) Folder(ctx context.Context, framework string) (string, error) {
	root, err := r.Root(ctx)
	if err != nil {
		return "", err
	}

	folder := filepath.Join(root, framework+FolderSuffix)
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		notFound := errors.NewTemplateNotFoundError("no %s template at %s", framework, folder)
		if available := Frameworks(root); len(available) > 0 {
			return "", errors.WithHintf(notFound, "available frameworks: %s", strings.Join(available, ", "))
		}
		return "", errors.WithHintf(notFound, "create %s or point templates.dir at your template root", folder)
	}
	return folder, nil
}

// Frameworks lists the frameworks that have a template folder under root
func Frameworks(root string) []string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() && strings.HasSuffix(e.Name(), FolderSuffix) {
			names = append(names, strings.TrimSuffix(e.Name(), FolderSuffix))
		}
	}
	sort.Strings(names)
	return names
}

func (r *Resolver) fetch(ctx context.Context) error {
	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}

	// Use go-getter's detection to identify source type
	detected, err := getter.Detect(r.source, pwd, getter.Detectors)
	if err != nil {
		return errors.Wrapf(err, "failed to detect template source %s", r.source)
	}

	tempDir, err := os.MkdirTemp("", "lcapgen-templates-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp directory")
	}
	// go-getter wants a destination that does not exist yet
	dst := filepath.Join(tempDir, "templates")

	r.log.Infow("Fetching templates", "source", r.source, "detected", detected, "destination", dst)

	client := &getter.Client{
		Ctx:     ctx,
		Src:     detected,
		Dst:     dst,
		Pwd:     pwd,
		Mode:    getter.ClientModeDir,
		Getters: getter.Getters,
	}
	if err := client.Get(); err != nil {
		os.RemoveAll(tempDir)
		return errors.WithHint(
			errors.Wrapf(err, "failed to fetch templates from %s", r.source),
			"check templates.source; any go-getter address works (git::https://..., ./dir, s3::...)")
	}

	r.tempDir = tempDir
	r.fetchedRoot = dst
	return nil
}

// Close removes any fetched template tree. Safe to call multiple times.
func (r *Resolver) Close() error {
	if r.tempDir == "" {
		return nil
	}
	r.log.Debugw("Cleaning up fetched templates", "path", r.tempDir)
	err := os.RemoveAll(r.tempDir)
	r.tempDir = ""
	r.fetchedRoot = ""
	return err
}
