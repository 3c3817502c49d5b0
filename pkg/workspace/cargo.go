package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/wsgraph/pkg/errors"
)

const cargoToml = "Cargo.toml"

type cargoFile struct {
	Workspace *struct {
		Members []string `toml:"members"`
		Exclude []string `toml:"exclude"`
	} `toml:"workspace"`
	Package *struct {
		Name    string `toml:"name"`
		Version any    `toml:"version"` // string, or { workspace = true }
		Publish any    `toml:"publish"` // bool or list of registries
	} `toml:"package"`
	Dependencies      map[string]any `toml:"dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
}

func detectCargo(ctx context.Context, root string, l *log.Logger) ([]string, []Package, bool, error) {
	cf, err := readCargoFile(filepath.Join(root, cargoToml))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, err
	}
	if cf.Workspace == nil {
		return nil, nil, false, nil
	}

	patterns := append([]string(nil), cf.Workspace.Members...)
	for _, ex := range cf.Workspace.Exclude {
		patterns = append(patterns, "!"+ex)
	}

	dirs, err := expandMembers(ctx, root, patterns, cargoToml, l)
	if err != nil {
		return nil, nil, false, err
	}
	// A root manifest with both [workspace] and [package] is a member too.
	if cf.Package != nil && !slices.Contains(dirs, ".") {
		dirs = append([]string{"."}, dirs...)
	}

	var pkgs []Package
	for _, dir := range dirs {
		mf, err := readCargoFile(filepath.Join(root, filepath.FromSlash(dir), cargoToml))
		if err != nil {
			return nil, nil, false, err
		}
		if mf.Package == nil || mf.Package.Name == "" {
			l.Debug("Skipping crate without [package] name", "dir", dir)
			continue
		}
		pkgs = append(pkgs, mf.toPackage(dir))
	}
	return patterns, pkgs, true, nil
}

func readCargoFile(p string) (cargoFile, error) {
	var cf cargoFile
	data, err := os.ReadFile(p)
	if err != nil {
		return cf, err
	}
	if err := toml.Unmarshal(data, &cf); err != nil {
		return cf, errs.Wrap(errs.ErrCodeInvalidManifest, err, "parse %s", p)
	}
	return cf, nil
}

func (c cargoFile) toPackage(dir string) Package {
	prod := cargoDeps(c.Dependencies)
	for name, v := range cargoDeps(c.BuildDependencies) {
		if _, ok := prod[name]; !ok {
			prod[name] = v
		}
	}
	return Package{
		Name:             c.Package.Name,
		Version:          cargoVersion(c.Package.Version),
		Dir:              dir,
		Manifest:         cargoToml,
		Private:          c.Package.Publish == false,
		Dependencies:     prod,
		DevDependencies:  cargoDeps(c.DevDependencies),
		PeerDependencies: map[string]string{},
	}
}

// cargoDeps flattens a dependency table. Renamed dependencies
// (`alias = { package = "real" }`) are keyed by the real crate name.
func cargoDeps(table map[string]any) map[string]string {
	out := make(map[string]string, len(table))
	for key, v := range table {
		name, req := key, ""
		switch dep := v.(type) {
		case string:
			req = dep
		case map[string]any:
			if crate, ok := dep["package"].(string); ok && crate != "" {
				name = crate
			}
			switch {
			case dep["version"] != nil:
				req = fmt.Sprint(dep["version"])
			case dep["path"] != nil:
				req = "path:" + fmt.Sprint(dep["path"])
			case dep["workspace"] == true:
				req = "workspace"
			}
		}
		out[name] = req
	}
	return out
}

func cargoVersion(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
