package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wsgraph/internal/config"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create configuration",
		Long: `Configuration is read from, in increasing priority:

  built-in defaults
  the user file (~/.config/wsgraph/config.yml)
  the project file (<dir>/.wsgraph.yml) or --config
  WSGRAPH_* environment variables (WSGRAPH_CACHE__REDIS_URL sets cache.redis_url)
  command-line flags`,
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())
	return cmd
}

func (c *CLI) configShowCommand() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "show [dir]",
		Short: "Print the resolved configuration as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, dirArg(args), configPath)
			if err != nil {
				return err
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: <dir>/.wsgraph.yml)")
	return cmd
}

func (c *CLI) configInitCommand() *cobra.Command {
	var (
		force bool
		user  bool
	)
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter config file",
		Long: `Write a commented config file with every setting at its default, to
<dir>/.wsgraph.yml or, with --user, to the user config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(dirArg(args), config.ProjectFile)
			if user {
				p, err := config.UserConfigPath()
				if err != nil {
					return err
				}
				path = p
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Wrote config")
			printFile(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&user, "user", false, "write the user config file instead")
	return cmd
}
