package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wsgraph/pkg/workspace"
)

// listedPackage is the --json representation of a workspace package.
type listedPackage struct {
	Name         string   `json:"name"`
	Version      string   `json:"version,omitempty"`
	Dir          string   `json:"dir"`
	Private      bool     `json:"private,omitempty"`
	Dependencies []string `json:"dependencies"`
}

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	var (
		configPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "List workspace packages",
		Long: `List the packages of the workspace in dir together with the workspace
packages each one depends on.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := dirArg(args)
			cfg, err := loadConfig(cmd, dir, configPath)
			if err != nil {
				return err
			}

			ws, err := workspace.Discover(cmd.Context(), dir, workspace.Options{Logger: loggerFromContext(cmd.Context())})
			if err != nil {
				return err
			}

			pkgs := listPackages(ws, cfg.DepKinds())
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(pkgs)
			}
			printPackages(cmd.OutOrStdout(), ws, pkgs)
			return nil
		},
	}

	f := cmd.Flags()
	f.Bool("dev", false, "include development dependencies")
	f.Bool("peer", false, "include peer dependencies")
	f.BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	f.StringVar(&configPath, "config", "", "config file (default: <dir>/.wsgraph.yml)")

	return cmd
}

// listPackages returns every package with its in-workspace dependencies.
func listPackages(ws *workspace.Workspace, kinds workspace.DepKind) []listedPackage {
	members := make(map[string]bool, len(ws.Packages))
	for _, p := range ws.Packages {
		members[p.Name] = true
	}

	out := make([]listedPackage, 0, len(ws.Packages))
	for _, p := range ws.Packages {
		deps := []string{}
		for _, d := range p.Record(kinds).Dependencies {
			if members[d] {
				deps = append(deps, d)
			}
		}
		out = append(out, listedPackage{
			Name:         p.Name,
			Version:      p.Version,
			Dir:          p.Dir,
			Private:      p.Private,
			Dependencies: deps,
		})
	}
	return out
}

func printPackages(w io.Writer, ws *workspace.Workspace, pkgs []listedPackage) {
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("%s workspace", ws.Kind))+" "+StyleDim.Render(ws.Root))
	if len(pkgs) == 0 {
		printWarning(w, "No packages found")
		return
	}
	for _, p := range pkgs {
		line := styleRoot.Render(p.Name)
		if p.Version != "" {
			line += " " + StyleDim.Render(p.Version)
		}
		if p.Private {
			line += " " + StyleDim.Render("(private)")
		}
		fmt.Fprintln(w, line)
		printDetail(w, "%s", p.Dir)
		if len(p.Dependencies) > 0 {
			fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(strings.Join(p.Dependencies, ", ")))
		}
	}
	fmt.Fprintln(w)
	printInfo(w, "%d packages", len(pkgs))
}
