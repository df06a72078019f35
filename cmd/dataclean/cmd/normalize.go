package cmd

import (
	"fmt"

	"dataclean/internal/formatter"
	"dataclean/internal/normalizer"

	"github.com/spf13/cobra"
)

var (
	normalizeInput   string
	normalizeOutput  string
	normalizePreview int
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Clean a semicolon-delimited customer CSV",
	Long: `Reads a semicolon-delimited CSV export, normalizes column names, cleans
the known columns (age, montant_total_eur, actif, newsletter_ok,
date_inscription, derniere_connexion), drops blank, unnamed and duplicate
rows, and writes a comma-delimited CSV.`,
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVar(&normalizeInput, "input", "", "input CSV path (default from config)")
	normalizeCmd.Flags().StringVar(&normalizeOutput, "output", "", "output CSV path (default from config)")
	normalizeCmd.Flags().IntVar(&normalizePreview, "preview", 0, "print the first N cleaned rows")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(_ *cobra.Command, _ []string) error {
	input := firstNonEmpty(normalizeInput, cfg.Normalizer.Input)
	output := firstNonEmpty(normalizeOutput, cfg.Normalizer.Output)

	return normalize(input, output)
}

func normalize(input, output string) error {
	summary, err := normalizer.Normalize(fsys, input, output, log)
	if err != nil {
		log.Error("normalization failed", "error", err)
		return err
	}

	fmt.Printf("✓ Clean file saved: %s\n", summary.Output)
	fmt.Println(summary.String())

	if rows := previewRows(); rows > 0 {
		fmt.Println()
		fmt.Println(formatter.RenderTable(summary.Table, rows))
	}

	return nil
}

func previewRows() int {
	if normalizePreview > 0 {
		return normalizePreview
	}

	if cfg.Features.EnablePreview {
		return cfg.Features.PreviewRows
	}

	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
