package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/dtable/internal/config"
	"github.com/oakwood-commons/dtable/pkg/settings"
)

var configOutput string

// loadConfig loads the config resolved in PersistentPreRun, or resolves it
// from --config-file when the command runs without one.
func loadConfig(ctx context.Context) (config.File, error) {
	path := ""
	if run, ok := settings.FromContext(ctx); ok {
		path = run.ConfigPath
	} else {
		path = config.ResolvePath(configFile)
	}
	return config.Load(path)
}

// versionString is "dtable v1.2.3 (commit abc1234, go1.24.2)".
func versionString() string {
	cfg, err := config.Load("")
	about := cfg.App.About
	if err != nil || about.Name == "" {
		about = config.AboutConfig{Name: settings.CliBinaryName}
	}
	version := about.Version
	if version == "" {
		version = settings.VersionInformation.BuildVersion
	}
	goVersion := about.GoVersion
	if goVersion == "" {
		goVersion = runtime.Version()
	}
	commit := about.GitCommit
	if commit == "" {
		commit = settings.VersionInformation.Commit
	}
	return fmt.Sprintf("%s %s (commit %s, %s)", about.Name, version, commit, goVersion)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the dtable version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), versionString())
		return err
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect dtable configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the merged configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		var data []byte
		switch strings.ToLower(strings.TrimSpace(configOutput)) {
		case "yaml", "":
			data, err = config.Marshal(cfg)
		case "json":
			data, err = configJSON(cfg)
		case "toml":
			data, err = toml.Marshal(cfg)
		default:
			return usageErrorf("invalid output for config: %q (use yaml|json|toml)", configOutput)
		}
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// configJSON renders cfg with its YAML keys.
func configJSON(cfg config.File) ([]byte, error) {
	raw, err := config.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

var configThemesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the configured themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range cfg.ThemeNames() {
			marker := "  "
			if name == cfg.UI.Theme.Default {
				marker = "* "
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), marker+name); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() { //nolint:gochecknoinits
	configGetCmd.Flags().StringVarP(&configOutput, "output", "o", "yaml", "output format: yaml|json|toml")
	configCmd.AddCommand(configGetCmd, configThemesCmd)
}
