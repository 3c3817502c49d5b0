package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/wsgraph/pkg/errors"
)

const packageJSON = "package.json"

// defaultLernaPackages is what lerna assumes without a "packages" key.
var defaultLernaPackages = []string{"packages/*"}

type lernaFile struct {
	Packages      []string `json:"packages"`
	UseWorkspaces bool     `json:"useWorkspaces"`
}

type packageFile struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Private              bool              `json:"private"`
	Workspaces           json.RawMessage   `json:"workspaces"`
	Dependencies         map[string]string `json:"dependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
}

// workspaces decodes the "workspaces" field, which is either a list of
// patterns or an object with a "packages" list (yarn classic).
func (p packageFile) workspaces() ([]string, error) {
	if len(p.Workspaces) == 0 || string(p.Workspaces) == "null" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(p.Workspaces, &list); err == nil {
		return list, nil
	}
	var obj struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(p.Workspaces, &obj); err != nil {
		return nil, err
	}
	return obj.Packages, nil
}

func detectLerna(ctx context.Context, root string, l *log.Logger) ([]string, []Package, bool, error) {
	data, err := os.ReadFile(filepath.Join(root, "lerna.json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, errs.Wrap(errs.ErrCodeIO, err, "read lerna.json")
	}

	var lerna lernaFile
	if err := json.Unmarshal(data, &lerna); err != nil {
		return nil, nil, false, errs.Wrap(errs.ErrCodeInvalidManifest, err, "parse lerna.json")
	}

	patterns := lerna.Packages
	if len(patterns) == 0 && lerna.UseWorkspaces {
		if rootPkg, err := readPackageFile(filepath.Join(root, packageJSON)); err == nil {
			patterns, _ = rootPkg.workspaces()
		}
	}
	if len(patterns) == 0 {
		patterns = defaultLernaPackages
	}

	pkgs, err := loadNPMPackages(ctx, root, patterns, l)
	if err != nil {
		return nil, nil, false, err
	}
	return patterns, pkgs, true, nil
}

func detectNPM(ctx context.Context, root string, l *log.Logger) ([]string, []Package, bool, error) {
	pf, err := readPackageFile(filepath.Join(root, packageJSON))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, err
	}

	patterns, err := pf.workspaces()
	if err != nil {
		return nil, nil, false, errs.Wrap(errs.ErrCodeInvalidManifest, err, "parse package.json workspaces")
	}
	if len(patterns) == 0 {
		// A plain package.json: maybe pnpm declares the members.
		return nil, nil, false, nil
	}

	pkgs, err := loadNPMPackages(ctx, root, patterns, l)
	if err != nil {
		return nil, nil, false, err
	}
	return patterns, pkgs, true, nil
}

func loadNPMPackages(ctx context.Context, root string, patterns []string, l *log.Logger) ([]Package, error) {
	dirs, err := expandMembers(ctx, root, patterns, packageJSON, l)
	if err != nil {
		return nil, err
	}

	var pkgs []Package
	for _, dir := range dirs {
		pf, err := readPackageFile(filepath.Join(root, filepath.FromSlash(dir), packageJSON))
		if err != nil {
			return nil, err
		}
		if pf.Name == "" {
			l.Debug("Skipping package without name", "dir", dir)
			continue
		}
		pkgs = append(pkgs, pf.toPackage(dir))
	}
	return pkgs, nil
}

func readPackageFile(p string) (packageFile, error) {
	var pf packageFile
	data, err := os.ReadFile(p)
	if err != nil {
		return pf, err
	}
	if err := json.Unmarshal(data, &pf); err != nil {
		return pf, errs.Wrap(errs.ErrCodeInvalidManifest, err, "parse %s", p)
	}
	return pf, nil
}

func (p packageFile) toPackage(dir string) Package {
	prod := make(map[string]string, len(p.Dependencies)+len(p.OptionalDependencies))
	for name, v := range p.OptionalDependencies {
		prod[name] = v
	}
	for name, v := range p.Dependencies {
		prod[name] = v
	}
	return Package{
		Name:             p.Name,
		Version:          p.Version,
		Dir:              path.Clean(dir),
		Manifest:         packageJSON,
		Private:          p.Private,
		Dependencies:     prod,
		DevDependencies:  orEmpty(p.DevDependencies),
		PeerDependencies: orEmpty(p.PeerDependencies),
	}
}

func orEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
