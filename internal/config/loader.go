package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/fmlgen/internal/ctxlog"
	"github.com/vk/fmlgen/internal/fsutil"
)

// MultiLoader dispatches every discovered file to the FileLoader registered
// for its extension and merges the fragments.
type MultiLoader struct {
	byExt map[string]FileLoader
	exts  []string
}

// NewLoader creates a Loader over the given format-specific loaders. When two
// loaders claim the same extension the first one wins.
func NewLoader(loaders ...FileLoader) *MultiLoader {
	l := &MultiLoader{byExt: make(map[string]FileLoader)}
	for _, fl := range loaders {
		for _, ext := range fl.Extensions() {
			if _, exists := l.byExt[ext]; exists {
				continue
			}
			l.byExt[ext] = fl
			l.exts = append(l.exts, ext)
		}
	}
	return l
}

// Load implements Loader.
func (l *MultiLoader) Load(ctx context.Context, paths ...string) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "path_count", len(paths), "extensions", l.exts)

	files, err := l.findManifestFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no manifest files (%s) found in %s", strings.Join(l.exts, ", "), strings.Join(paths, ", "))
	}
	logger.Debug("Discovered manifest files.", "files", files)

	merged := &Manifest{}
	for _, file := range files {
		fl := l.loaderFor(file)
		fragment, err := fl.LoadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		if err := merged.merge(fragment); err != nil {
			return nil, fmt.Errorf("failed to merge manifest %s: %w", file, err)
		}
		logger.Debug("Merged manifest file.", "file", file, "features", len(fragment.Features))
	}

	if err := Link(merged); err != nil {
		return nil, err
	}

	logger.Debug("Manifest loading complete.",
		"enums", len(merged.Enums),
		"objects", len(merged.Objects),
		"features", len(merged.Features),
	)
	return merged, nil
}

func (l *MultiLoader) loaderFor(file string) FileLoader {
	for _, ext := range l.exts {
		if strings.HasSuffix(file, ext) {
			return l.byExt[ext]
		}
	}
	return nil
}

// findManifestFiles walks all given paths and returns a flat, duplicate-free
// list of manifest files in lexical order per path.
func (l *MultiLoader) findManifestFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, l.exts...)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		for _, f := range found {
			if _, wasSeen := seen[f]; wasSeen {
				continue
			}
			seen[f] = struct{}{}
			all = append(all, f)
		}
	}
	return all, nil
}

// merge appends fragment's definitions, rejecting duplicate names.
func (m *Manifest) merge(fragment *Manifest) error {
	if fragment.About.ObjectName != "" {
		if m.About.ObjectName != "" {
			return fmt.Errorf("duplicate about block: registry object already named %q", m.About.ObjectName)
		}
		m.About = fragment.About
	}
	for _, e := range fragment.Enums {
		if _, exists := m.Enum(e.Name); exists {
			return fmt.Errorf("enum %q is defined more than once", e.Name)
		}
		m.Enums = append(m.Enums, e)
	}
	for _, o := range fragment.Objects {
		if _, exists := m.Object(o.Name); exists {
			return fmt.Errorf("object %q is defined more than once", o.Name)
		}
		m.Objects = append(m.Objects, o)
	}
	for _, f := range fragment.Features {
		if _, exists := m.Feature(f.Name); exists {
			return fmt.Errorf("feature %q is defined more than once", f.Name)
		}
		m.Features = append(m.Features, f)
	}
	return nil
}
