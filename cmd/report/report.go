// Package report contains the command that exports a month's ledger to a file.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"fjacquet/flatbot/cmd/root"
	"fjacquet/flatbot/internal/config"
	"fjacquet/flatbot/internal/dateutils"
	"fjacquet/flatbot/internal/logging"
	"fjacquet/flatbot/internal/report"
	"fjacquet/flatbot/internal/sheetstore"
)

var month string

// Cmd is the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Export one month of the ledger to CSV or XLSX",
	Long: `Read a month's transactions from the ledger spreadsheet and export them,
with a summary block, to a CSV or XLSX file.`,
	Run: reportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&month, "month", "m", "", "Month to export in Jan-2006 form (default: current month)")
}

func reportFunc(cmd *cobra.Command, args []string) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		root.Log.Fatalf("Configuration error: %v", err)
	}

	when := time.Now()
	if month != "" {
		when, err = time.Parse(dateutils.MonthSheetName, month)
		if err != nil {
			root.Log.Fatalf("Invalid month %q, expected e.g. %s", month, time.Now().Format(dateutils.MonthSheetName))
		}
	}
	monthName := dateutils.MonthName(when)

	format := strings.ToLower(root.SharedFlags.Format)
	if format != "csv" && format != "xlsx" {
		root.Log.Fatalf("Invalid format %q, expected csv or xlsx", root.SharedFlags.Format)
	}
	output := root.SharedFlags.Output
	if output == "" {
		output = fmt.Sprintf("report-%s.%s", monthName, format)
	}

	ctx := context.Background()
	log := logging.GetLogger()
	ledger, err := sheetstore.New(ctx, cfg.Sheets.LedgerSpreadsheetID, cfg.Sheets.CollectionSpreadsheetID, log,
		option.WithCredentialsFile(cfg.Google.CredentialsFile))
	if err != nil {
		root.Log.Fatalf("Failed to connect to Google Sheets: %v", err)
	}

	txs, err := ledger.MonthTransactions(ctx, when)
	if err != nil {
		root.Log.Fatalf("Failed to read transactions: %v", err)
	}

	summary := report.Build(txs)
	switch format {
	case "csv":
		err = report.WriteCSV(output, txs)
	case "xlsx":
		err = report.WriteXLSX(output, monthName, txs, summary)
	}
	if err != nil {
		root.Log.Fatalf("Export failed: %v", err)
	}

	root.Log.Infof("Exported %d transactions for %s to %s", summary.Transactions, monthName, output)
}
