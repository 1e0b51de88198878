package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tchluc/emploitogo-crawler/internal/jobs"
	"github.com/tchluc/emploitogo-crawler/internal/store"
	"github.com/tchluc/emploitogo-crawler/internal/structured"
)

// newProcessCmd creates the 'process' subcommand, which re-reads the raw
// dataset and derives the structured view without touching the network.
func newProcessCmd() *cobra.Command {
	var (
		input  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Derive structured fields from the raw dataset",
		Long: `Reads the scraped JSON dataset, runs the structured extraction
pass over every record's page content (company, city, contract, skills,
internship tasks, deadline, documents), and writes the result as a
separate structured JSON file.`,

		RunE: func(_ *cobra.Command, _ []string) error {
			if input == "" {
				input = cfg.Storage.OutputFile
			}
			if output == "" {
				output = cfg.Storage.StructuredFile
			}
			return runProcess(input, output)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "path of the scraped dataset")
	cmd.Flags().StringVarP(&output, "output", "o", "", "path of the structured output")

	return cmd
}

func runProcess(input, output string) error {
	records, err := store.LoadRecords(input)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	logger.Info("Processing dataset",
		zap.String("input", input), zap.Int("jobs", len(records)))

	out := jobs.StructuredFile{Jobs: make([]jobs.StructuredInfo, 0, len(records))}
	for _, rec := range records {
		content := jobs.StrVal(rec.Content)
		if content == "" {
			content = jobs.StrVal(rec.Description)
		}
		info := structured.ExtractAll(content, rec.Title)
		info.URL = rec.URL
		out.Jobs = append(out.Jobs, info)
	}
	out.Total = len(out.Jobs)

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode structured output: %w", err)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write structured output: %w", err)
	}

	logger.Info("Structured extraction complete",
		zap.String("output", output), zap.Int("jobs", out.Total))
	return nil
}
