package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/born-ml/codebook/internal/backend/cpu"
	"github.com/born-ml/codebook/internal/nn"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inspect",
		Short:   "Show parameter storage and memory use",
		Example: `  codebook inspect --arch "linear(1,10),relu,linear(10,1)" --weights model.json`,
		Args:    cobra.NoArgs,
		RunE:    InspectHandler,
	}

	addModelFlags(cmd)

	return cmd
}

// InspectHandler prints one row per parameter and the model total.
func InspectHandler(cmd *cobra.Command, args []string) error {
	model, _, err := loadModel(cmd, cpu.New())
	if err != nil {
		return err
	}

	var data [][]string
	for i := 0; i < model.Len(); i++ {
		m := model.Module(i)
		p, ok := m.(nn.Parameterized[Backend])
		if !ok {
			data = append(data, []string{strconv.Itoa(i), fmt.Sprint(m), "-", "-", "-", "0", "-"})
			continue
		}
		for _, param := range p.Parameters() {
			raw := param.Tensor().Raw()
			codebook := "-"
			if cb := raw.Codebook(); cb != nil {
				codebook = strconv.Itoa(cb.NumElements())
			}
			data = append(data, []string{
				strconv.Itoa(i),
				fmt.Sprint(m),
				param.Name(),
				raw.DType().String(),
				raw.Shape().String(),
				strconv.Itoa(param.Bytes()),
				codebook,
			})
		}
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"LAYER", "MODULE", "PARAM", "DTYPE", "SHAPE", "BYTES", "CODEBOOK"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	fmt.Fprintf(cmd.OutOrStdout(), "\ntotal: %d bytes (%.6f MB)\n", model.Bytes(), model.SizeInMegabytes())
	return nil
}
