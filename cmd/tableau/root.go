package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tableau"
	"github.com/aretw0/tableau/internal/logging"
	"github.com/aretw0/tableau/pkg/adapters/file"
	"github.com/aretw0/tableau/pkg/observability"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tableau",
	Short: "Tableau inspects and lays out visual-novel scene documents",
	Long: `Tableau manages scene documents: a resource library plus scenes of objects
and groups. It validates documents, renders their resource graph, re-runs group
layout and serves them over HTTP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("dir", ".tableau/documents", "Directory holding the scene documents")
	flags.String("format", "json", "Document file format (json or yaml)")
	flags.String("redis", "", "Redis address; documents are stored there instead of --dir")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.Bool("strict", false, "Reject unknown action kinds")
}

// newEngine builds an engine from the persistent flags.
func newEngine(cmd *cobra.Command, metrics *observability.Metrics) (*tableau.Engine, error) {
	flags := cmd.Flags()
	dir, _ := flags.GetString("dir")
	format, _ := flags.GetString("format")
	redisAddr, _ := flags.GetString("redis")
	levelName, _ := flags.GetString("log-level")
	strict, _ := flags.GetBool("strict")

	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}

	var f file.Format
	switch format {
	case "json":
		f = file.JSON
	case "yaml", "yml":
		f = file.YAML
	default:
		return nil, fmt.Errorf("unknown format %q (want json or yaml)", format)
	}

	opts := []tableau.Option{
		tableau.WithLogger(logging.New(level)),
		tableau.WithFormat(f),
		tableau.WithStrict(strict),
	}
	if redisAddr != "" {
		opts = append(opts, tableau.WithRedis(redisAddr))
	}
	if metrics != nil {
		opts = append(opts, tableau.WithMetrics(metrics))
	}
	return tableau.New(dir, opts...)
}
