package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/born-ml/codebook/internal/arch"
	"github.com/born-ml/codebook/internal/backend/cpu"
	"github.com/born-ml/codebook/internal/envconfig"
	"github.com/born-ml/codebook/internal/nn"
	"github.com/born-ml/codebook/internal/statedict"
)

// Backend is the tensor backend used by every command.
type Backend = *cpu.CPUBackend

// addModelFlags registers the flags shared by commands that load a model.
func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().String("arch", "", "Model architecture, e.g. \"linear(1,10),relu,linear(10,1)\"")
	cmd.Flags().String("weights", "", "State dict JSON file (\"-\" reads stdin)")
	cmd.Flags().Uint("codebook-size", envconfig.CodebookSize(), "Entries per codebook")
	cmd.Flags().Bool("strict", envconfig.Strict(), "Fail on unrecognized state dict keys")
	_ = cmd.MarkFlagRequired("arch")
}

// loadModel builds the model described by --arch and loads --weights into it
// if given.
func loadModel(cmd *cobra.Command, backend Backend) (*nn.Sequential[Backend], arch.Arch, error) {
	spec, _ := cmd.Flags().GetString("arch")
	weights, _ := cmd.Flags().GetString("weights")
	size, _ := cmd.Flags().GetUint("codebook-size")
	strict, _ := cmd.Flags().GetBool("strict")

	a, err := arch.Parse(spec)
	if err != nil {
		return nil, nil, err
	}
	model := arch.Build(a, backend)

	if weights == "" {
		slog.Warn("no weights given, parameters are zero")
		return model, a, nil
	}

	sd, err := readStateDict(cmd.InOrStdin(), weights)
	if err != nil {
		return nil, nil, err
	}

	opts := nn.LoadOptions{
		CodebookSize: int(size),
		Strict:       strict,
		Logger:       slog.Default(),
	}
	if err := model.LoadStateDict(sd, opts); err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", weights, err)
	}
	slog.Debug("loaded state dict", "path", weights, "entries", sd.Len(), "bytes", model.Bytes())

	return model, a, nil
}

func readStateDict(stdin io.Reader, path string) (*statedict.StateDict, error) {
	if path == "-" {
		return statedict.Decode(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sd, err := statedict.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return sd, nil
}
