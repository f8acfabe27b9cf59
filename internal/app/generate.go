package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/fmlgen/internal/backend"
	"github.com/vk/fmlgen/internal/config"
	"github.com/vk/fmlgen/internal/diag"
	"github.com/vk/fmlgen/internal/emit"
	"github.com/vk/fmlgen/internal/resolve"
)

// GeneratedFile describes one output file of a generation run.
type GeneratedFile struct {
	Target string
	Path   string
	// Stale is set in check mode when the file on disk is missing or differs.
	Stale bool
}

// StaleError reports the files a check run found out of date.
type StaleError struct {
	Paths []string
}

func (e *StaleError) Error() string {
	return fmt.Sprintf("generated files are out of date:\n- %s", strings.Join(e.Paths, "\n- "))
}

// OutputFileName returns the name of the file generated for objectName by b.
func OutputFileName(objectName string, b backend.Backend) string {
	return objectName + "Features" + b.FileExtension()
}

// Load reads, links and resolves the configured manifests.
func (a *App) Load(ctx context.Context) (*config.Manifest, error) {
	ctx = a.context(ctx)
	a.logger.Debug("Loading manifests...", "paths", a.config.ManifestPaths)

	m, err := a.loader.Load(ctx, a.config.ManifestPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifests: %w", err)
	}
	resolved, err := resolve.Manifest(ctx, m)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Manifests loaded and resolved.", "features", len(resolved.Features))
	return resolved, nil
}

// Generate renders the manifests for every configured target and writes one
// file per target into the output directory. In check mode nothing is
// written; stale files are diffed to the app writer and reported through a
// *StaleError.
func (a *App) Generate(ctx context.Context) ([]GeneratedFile, error) {
	ctx = a.context(ctx)
	a.logger.Debug("App.Generate method started.", "targets", a.config.Targets, "check", a.config.Check)

	backends, err := a.registry.ValidateTargets(ctx, a.config.Targets)
	if err != nil {
		return nil, err
	}
	m, err := a.Load(ctx)
	if err != nil {
		return nil, err
	}

	// Every target is rendered before anything is written.
	em := emit.New(a.config.Workers)
	sources := make([]string, len(backends))
	var errs []error
	for i, b := range backends {
		src, err := em.EmitFile(ctx, m, b)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sources[i] = src
	}
	if err := diag.Join("generation", errs...); err != nil {
		return nil, err
	}

	files := make([]GeneratedFile, 0, len(backends))
	var stale []string
	for i, b := range backends {
		file := GeneratedFile{
			Target: b.Name(),
			Path:   filepath.Join(a.config.OutputDir, OutputFileName(m.About.ObjectName, b)),
		}
		if a.config.Check {
			file.Stale, err = a.check(file.Path, sources[i])
			if file.Stale {
				stale = append(stale, file.Path)
			}
		} else {
			err = a.write(file.Path, sources[i])
		}
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	if len(stale) > 0 {
		return files, &StaleError{Paths: stale}
	}
	a.logger.Debug("App.Generate method finished.", "files", len(files))
	return files, nil
}

func (a *App) write(path, src string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.logger.Info("Generated file.", "path", path, "bytes", len(src))
	return nil
}

// check reports whether the file at path differs from src, printing a line
// diff when it does.
func (a *App) check(path, src string) (bool, error) {
	current, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err == nil && string(current) == src {
		a.logger.Info("Generated file is up to date.", "path", path)
		return false, nil
	}

	a.logger.Warn("Generated file is out of date.", "path", path, "missing", err != nil)
	fmt.Fprint(a.outW, lineDiff(path, string(current), src))
	return true, nil
}
