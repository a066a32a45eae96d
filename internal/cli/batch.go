package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"invoice-audit/internal/export"
	"invoice-audit/internal/extract"
	"invoice-audit/internal/store"
)

var (
	batchOut     string
	batchJSONDir string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Extract every .txt invoice in a directory",
	Long: `Batch extracts every .txt file in a directory:
- One JSON report per invoice (optional, --json-dir)
- One XLSX workbook summarizing all invoices (--out)

Example:
  invoice-audit batch ./invoices
  invoice-audit batch ./invoices --out report.xlsx --json-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchOut, "out", "", "output XLSX file path (defaults to <dir>/../invoices.xlsx)")
	batchCmd.Flags().StringVar(&batchJSONDir, "json-dir", "", "directory for per-invoice JSON reports (optional)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	dir := args[0]
	if batchOut == "" {
		batchOut = filepath.Join(filepath.Dir(dir), "invoices.xlsx")
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", dir, err)
	}

	if batchJSONDir != "" {
		if err := os.MkdirAll(batchJSONDir, 0755); err != nil {
			return fmt.Errorf("create json directory: %w", err)
		}
	}

	// Records pass through a throwaway in-memory store so the XLSX
	// exporter sees the same shape the server does.
	st, err := store.NewSQLite(ctx, ":memory:", logger)
	if err != nil {
		return fmt.Errorf("open batch store: %w", err)
	}
	defer st.Close()

	processed := 0
	failures := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".txt") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", entry.Name(), err)
			failures++
			continue
		}

		ex := extract.Extract(string(raw), entry.Name())
		if _, err := st.Save(ctx, ex); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", entry.Name(), err)
			failures++
			continue
		}

		if batchJSONDir != "" {
			out, err := json.MarshalIndent(ex, "", "  ")
			if err == nil {
				name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())) + ".json"
				err = os.WriteFile(filepath.Join(batchJSONDir, name), out, 0644)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", entry.Name(), err)
			}
		}

		processed++
		fmt.Fprintf(os.Stderr, "✓ %s (%s, score %d/100)\n",
			entry.Name(), ex.Legitimacy.LegitimacyStatus, ex.Legitimacy.LegitimacyScore)
	}

	xlsxBytes, err := export.NewService(st, logger).ExportInvoicesXLSX(ctx)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := os.WriteFile(batchOut, xlsxBytes, 0644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	fmt.Printf("Batch complete!\n")
	fmt.Printf("- Processed: %d\n", processed)
	fmt.Printf("- Failures:  %d\n", failures)
	fmt.Printf("- Output:    %s\n", batchOut)
	return nil
}
