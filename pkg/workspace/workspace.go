package workspace

import (
	"cmp"
	"context"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wsgraph/pkg/depgraph"
	errs "github.com/matzehuels/wsgraph/pkg/errors"
)

// Kind identifies the workspace layout that was detected.
type Kind string

const (
	KindLerna Kind = "lerna"
	KindNPM   Kind = "npm"
	KindPNPM  Kind = "pnpm"
	KindCargo Kind = "cargo"
)

// DepKind selects which declared dependencies become graph edges.
type DepKind uint8

const (
	KindProd DepKind = 1 << iota // dependencies, optionalDependencies, [dependencies], [build-dependencies]
	KindDev                      // devDependencies, [dev-dependencies]
	KindPeer                     // peerDependencies
)

// Has reports whether k includes other.
func (k DepKind) Has(other DepKind) bool { return k&other != 0 }

// Package is one member of a workspace.
type Package struct {
	Name             string            // Package name from the manifest
	Version          string            // Declared version (may be empty)
	Dir              string            // Directory relative to the workspace root, slash separated
	Manifest         string            // Manifest file name (package.json, Cargo.toml)
	Private          bool              // npm "private" flag, cargo publish = false
	Dependencies     map[string]string // name -> version requirement
	DevDependencies  map[string]string
	PeerDependencies map[string]string
}

// Record converts the package into builder input. Dependency names are
// deduplicated and sorted.
func (p Package) Record(kinds DepKind) depgraph.Record {
	names := make(map[string]struct{})
	add := func(m map[string]string) {
		for name := range m {
			names[name] = struct{}{}
		}
	}
	if kinds.Has(KindProd) {
		add(p.Dependencies)
	}
	if kinds.Has(KindDev) {
		add(p.DevDependencies)
	}
	if kinds.Has(KindPeer) {
		add(p.PeerDependencies)
	}
	return depgraph.Record{
		Name:         p.Name,
		Dependencies: slices.Sorted(maps.Keys(names)),
	}
}

// Workspace is the result of [Discover].
type Workspace struct {
	Root     string    // Absolute workspace root
	Kind     Kind      // Detected layout
	Patterns []string  // Member patterns read from the root manifest
	Packages []Package // Members sorted by Dir
}

// Records returns the builder input for every package.
func (w *Workspace) Records(kinds DepKind) []depgraph.Record {
	out := make([]depgraph.Record, len(w.Packages))
	for i, p := range w.Packages {
		out[i] = p.Record(kinds)
	}
	return out
}

// Find returns the package with the given name.
func (w *Workspace) Find(name string) (Package, bool) {
	for _, p := range w.Packages {
		if p.Name == name {
			return p, true
		}
	}
	return Package{}, false
}

// Versions returns name -> version for all packages with a version.
func (w *Workspace) Versions() map[string]string {
	out := make(map[string]string, len(w.Packages))
	for _, p := range w.Packages {
		if p.Version != "" {
			out[p.Name] = p.Version
		}
	}
	return out
}

// Options configures [Discover].
type Options struct {
	Logger *log.Logger // Debug output for skipped directories (optional)
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// detector probes root for one layout. It returns ok=false when the layout
// is not present.
type detector struct {
	kind   Kind
	detect func(ctx context.Context, root string, l *log.Logger) (patterns []string, pkgs []Package, ok bool, err error)
}

var detectors = []detector{
	{KindLerna, detectLerna},
	{KindNPM, detectNPM},
	{KindPNPM, detectPNPM},
	{KindCargo, detectCargo},
}

// Discover finds the workspace rooted at dir.
func Discover(ctx context.Context, dir string, opts Options) (*Workspace, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeIO, err, "resolve %s", dir)
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		return nil, errs.New(errs.ErrCodeWorkspaceNotFound, "not a directory: %s", root)
	}

	l := opts.logger()
	for _, d := range detectors {
		patterns, pkgs, ok, err := d.detect(ctx, root, l)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		slices.SortFunc(pkgs, func(a, b Package) int { return cmp.Compare(a.Dir, b.Dir) })
		if err := checkUniqueNames(pkgs); err != nil {
			return nil, err
		}
		l.Debug("Detected workspace", "kind", d.kind, "root", root, "packages", len(pkgs))
		return &Workspace{Root: root, Kind: d.kind, Patterns: patterns, Packages: pkgs}, nil
	}

	return nil, errs.New(errs.ErrCodeWorkspaceNotFound,
		"no workspace found in %s (looked for lerna.json, package.json workspaces, pnpm-workspace.yaml, Cargo.toml [workspace])", root)
}

// checkUniqueNames rejects workspaces where two members declare the same name.
func checkUniqueNames(pkgs []Package) error {
	dirs := make(map[string]string, len(pkgs))
	for _, p := range pkgs {
		if first, dup := dirs[p.Name]; dup {
			return errs.New(errs.ErrCodeInvalidManifest,
				"package name %q is used by both %s and %s", p.Name, first, p.Dir)
		}
		dirs[p.Name] = p.Dir
	}
	return nil
}
