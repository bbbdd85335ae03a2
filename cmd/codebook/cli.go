package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/born-ml/codebook/internal/envconfig"
	"github.com/born-ml/codebook/internal/logutil"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "v0.1.0-dev"

func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// NewCLI builds the root command.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "codebook",
		Short:         "Feed-forward inference over dense and codebook-quantized weights",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logutil.NewLogger(os.Stderr, envconfig.LogLevel()))
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(cmd.UsageString())
		},
	}

	runCmd := newRunCmd()
	inspectCmd := newInspectCmd()
	exportCmd := newExportCmd()
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "codebook version %s\n", version)
		},
	}

	envVars := envconfig.AsMap()
	envs := []envconfig.EnvVar{
		envVars["CODEBOOK_DEBUG"],
		envVars["CODEBOOK_SIZE"],
		envVars["CODEBOOK_STRICT"],
	}
	appendEnvDocs(inspectCmd, envs)
	appendEnvDocs(exportCmd, envs)
	appendEnvDocs(runCmd, append(envs, envVars["CODEBOOK_WORKERS"]))

	rootCmd.AddCommand(runCmd, inspectCmd, exportCmd, versionCmd)

	return rootCmd
}
