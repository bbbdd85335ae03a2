package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/born-ml/codebook/internal/backend/cpu"
	"github.com/born-ml/codebook/internal/statedict"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Load a state dict and write it back in canonical key form",
		Long: `Load a state dict and write the model's parameters back as JSON.

Unrecognized keys are dropped, "<attr>.weights" keys become "<attr>" and
quantized parameters are written as a codebook entry followed by its indexes.`,
		Args: cobra.NoArgs,
		RunE: ExportHandler,
	}

	addModelFlags(cmd)
	cmd.Flags().String("prefix", "model", "Key prefix for exported entries")
	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")

	return cmd
}

// ExportHandler writes the loaded model's state dict.
func ExportHandler(cmd *cobra.Command, args []string) error {
	model, _, err := loadModel(cmd, cpu.New())
	if err != nil {
		return err
	}

	prefix, _ := cmd.Flags().GetString("prefix")
	sd, err := model.StateDict(prefix)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		return statedict.Encode(cmd.OutOrStdout(), sd)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := statedict.Encode(f, sd); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
