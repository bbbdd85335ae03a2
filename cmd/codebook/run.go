package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/codebook/internal/backend/cpu"
	"github.com/born-ml/codebook/internal/envconfig"
	"github.com/born-ml/codebook/internal/tensor"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a forward pass",
		Long: `Run a forward pass over a matrix of inputs.

Rows are separated by ';' and columns by ','. With --batch every row is run
as its own forward pass, concurrently.`,
		Example: `  codebook run --arch "linear(1,10),relu,linear(10,1)" --weights model.json --input "1;2;3"`,
		Args:    cobra.NoArgs,
		RunE:    RunHandler,
	}

	addModelFlags(cmd)
	cmd.Flags().String("input", "", "Input matrix, e.g. \"1,2;3,4\"")
	cmd.Flags().Bool("batch", false, "Run each input row as a separate concurrent forward pass")
	cmd.Flags().Uint("workers", envconfig.Workers(), "Maximum concurrent forward passes with --batch (0 = all CPUs)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// RunHandler loads the model and prints the output matrix, one row per line.
func RunHandler(cmd *cobra.Command, args []string) error {
	backend := cpu.New()
	model, a, err := loadModel(cmd, backend)
	if err != nil {
		return err
	}

	raw, _ := cmd.Flags().GetString("input")
	rows, err := parseInput(raw)
	if err != nil {
		return err
	}
	if in := a.InFeatures(); in > 0 && len(rows[0]) != in {
		return fmt.Errorf("input has %d columns, model expects %d", len(rows[0]), in)
	}

	batch, _ := cmd.Flags().GetBool("batch")
	if !batch {
		input, err := tensor.FromSlice(flatten(rows), tensor.Shape{len(rows), len(rows[0])}, backend)
		if err != nil {
			return err
		}
		output, err := model.Forward(input)
		if err != nil {
			return err
		}
		return printMatrix(cmd, output)
	}

	inputs := make([]*tensor.Tensor[Backend], len(rows))
	for i, row := range rows {
		inputs[i], err = tensor.FromSlice(row, tensor.Shape{1, len(row)}, backend)
		if err != nil {
			return err
		}
	}

	workers, _ := cmd.Flags().GetUint("workers")
	outputs, err := model.ForwardBatch(cmd.Context(), inputs, int(workers))
	if err != nil {
		return err
	}
	for _, out := range outputs {
		if err := printMatrix(cmd, out); err != nil {
			return err
		}
	}
	return nil
}

// parseInput parses "1,2;3,4" into rows of equal width.
func parseInput(s string) ([][]float32, error) {
	var rows [][]float32
	for i, line := range strings.Split(s, ";") {
		var row []float32
		for _, field := range strings.Split(line, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
			if err != nil {
				return nil, fmt.Errorf("input row %d: %w", i, err)
			}
			row = append(row, float32(v))
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("input row %d has %d columns, row 0 has %d", i, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func flatten(rows [][]float32) []float32 {
	out := make([]float32, 0, len(rows)*len(rows[0]))
	for _, row := range rows {
		out = append(out, row...)
	}
	return out
}

func printMatrix(cmd *cobra.Command, t *tensor.Tensor[Backend]) error {
	data, err := t.Data()
	if err != nil {
		return err
	}

	shape := t.Shape()
	cols := shape[len(shape)-1]
	for r := 0; r < len(data)/cols; r++ {
		fields := make([]string, cols)
		for c := range fields {
			fields[c] = strconv.FormatFloat(float64(data[r*cols+c]), 'g', -1, 32)
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(fields, ","))
	}
	return nil
}
