package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/answerview/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate and check configuration",
		// Generating or checking a config must work even when the current one is broken.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
	cmd.AddCommand(newConfigGenerateCmd())
	cmd.AddCommand(newConfigCheckCmd())
	return cmd
}

// configWrite selects what generate does with an existing file.
type configWrite int

const (
	writeNew configWrite = iota
	writeOverwrite
	writeUpdate
)

var errConfigExists = errors.New("config already exists; use --overwrite to replace it (the current file is backed up) or --update to merge in missing defaults")

func newConfigGenerateCmd() *cobra.Command {
	var (
		file      string
		overwrite bool
		update    bool
		stdout    bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a commented config.toml with every default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stdout {
				_, err := io.WriteString(cmd.OutOrStdout(), config.RenderDefaultTOML())
				return err
			}
			if file == "" {
				file = config.DefaultConfigPath()
			}
			mode := writeNew
			switch {
			case overwrite:
				mode = writeOverwrite
			case update:
				mode = writeUpdate
			}
			return generateConfig(cmd.OutOrStdout(), file, mode)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "config path (default $XDG_CONFIG_HOME/answerview/config.toml)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing config, keeping a backup")
	cmd.Flags().BoolVar(&update, "update", false, "add missing defaults to an existing config, keeping a backup")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the default config instead of writing it")
	cmd.MarkFlagsMutuallyExclusive("overwrite", "update")
	cmd.MarkFlagsMutuallyExclusive("stdout", "file")
	return cmd
}

// configContent decides what to write at path. It returns false when the
// file is already current and nothing needs writing.
func configContent(path string, mode configWrite) (string, bool, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return config.RenderDefaultTOML(), true, nil
	case err != nil:
		return "", false, err
	}
	switch mode {
	case writeOverwrite:
		return config.RenderDefaultTOML(), true, nil
	case writeUpdate:
		updated, changed := config.UpdateTOML(string(data))
		return updated, changed, nil
	default:
		return "", false, fmt.Errorf("%s: %w", path, errConfigExists)
	}
}

func generateConfig(w io.Writer, path string, mode configWrite) error {
	content, changed, err := configContent(path, mode)
	if err != nil {
		return err
	}
	if !changed {
		_, _ = fmt.Fprintf(w, "Config already up to date: %s\n", path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	backup, err := backupConfig(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Wrote %s\n", path)
	if backup != "" {
		_, _ = fmt.Fprintf(w, "Backup: %s\n", backup)
	}
	return nil
}

// backupConfig copies path aside and returns the copy's name, or "" when
// there is nothing to back up.
func backupConfig(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	backup := path + ".bak"
	if _, err := os.Stat(backup); err == nil {
		backup = fmt.Sprintf("%s.bak-%s", path, time.Now().Format("20060102-150405"))
	}
	if err := os.WriteFile(backup, data, 0o600); err != nil {
		return "", err
	}
	return backup, nil
}

func newConfigCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the config the way other commands do and report every problem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			v := viper.New()
			if path != "" {
				v.SetConfigFile(path)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			source := v.ConfigFileUsed()
			if source == "" {
				source = "defaults (no config file found)"
			}
			if err := config.CheckConfigValidity(v); err != nil {
				return fmt.Errorf("%s is invalid:\n%w", source, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "config OK: %s\n", source)
			return nil
		},
	}
}
