package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"voice-ghostwriter/internal/infra/metrics"
)

func main() {
	metrics.MustRegister(prometheus.DefaultRegisterer)

	root := &cobra.Command{
		Use:           "ghostwriter",
		Short:         "Build a voice corpus from public post exports and draft new posts in that voice",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newIngestCmd(), newScrapeCmd(), newAnalyzeCmd(), newGenerateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
