package workspace

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/wsgraph/pkg/errors"
)

const pnpmWorkspace = "pnpm-workspace.yaml"

type pnpmFile struct {
	Packages []string `yaml:"packages"`
}

func detectPNPM(ctx context.Context, root string, l *log.Logger) ([]string, []Package, bool, error) {
	data, err := os.ReadFile(filepath.Join(root, pnpmWorkspace))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, errs.Wrap(errs.ErrCodeIO, err, "read %s", pnpmWorkspace)
	}

	var pf pnpmFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, nil, false, errs.Wrap(errs.ErrCodeInvalidManifest, err, "parse %s", pnpmWorkspace)
	}
	if len(pf.Packages) == 0 {
		// pnpm treats a workspace file without packages as "every package".
		pf.Packages = []string{"**"}
	}

	pkgs, err := loadNPMPackages(ctx, root, pf.Packages, l)
	if err != nil {
		return nil, nil, false, err
	}
	return pf.Packages, pkgs, true, nil
}
