package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarbarkade/INNControl-MA/internal/config"
	"github.com/sagarbarkade/INNControl-MA/internal/pipeline"
)

func newProcessCommand() *cobra.Command {
	var output string
	var configPath string

	cmd := &cobra.Command{
		Use:   "process <workbook.xlsx>",
		Short: "Process a management accounts workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			input, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading workbook: %w", err)
			}

			result, err := pipeline.Process(input, cfg)
			if err != nil {
				return err
			}

			for _, e := range result.Log.Entries() {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}

			if err := os.WriteFile(output, result.Output, 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "MA_Processed.xlsx", "output workbook path")
	cmd.Flags().StringVar(&configPath, "config", "inncontrol.yaml", "configuration file")

	return cmd
}

// loadConfig falls back to defaults when the config file is absent, so a
// bare `inncontrol process` works without an init step.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
