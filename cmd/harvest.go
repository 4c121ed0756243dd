package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/openswoop/socharvest/pkg/database"
	"github.com/openswoop/socharvest/pkg/harvest"
	"github.com/openswoop/socharvest/pkg/report"
	"github.com/openswoop/socharvest/pkg/soc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	apiUrl     string
	outFile    string
	ledgerFile string
	dbFile     string
)

// harvestCmd represents the harvest command
var harvestCmd = &cobra.Command{
	Use:   "harvest [mode]",
	Short: "Append every campus and term's courses to the master list",
	Long: `Fetches the course listing for each campus (NB, NK, CM), year
(2025 back to 2021) and term (Fall, Summer, Spring, Winter), keeping the
first record seen for each course string per campus.

The optional mode selects how the master list is opened: "a" appends
(the default), "w" truncates and "x" refuses to touch an existing file.
The ledger of course strings is always appended to.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := report.ModeAppend
		if len(args) > 0 {
			mode = args[0]
		}

		courseLog, err := report.OpenCourseLog(outFile, mode)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", outFile, err)
		}
		defer courseLog.Close()

		ledger, err := report.OpenLedger(ledgerFile)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", ledgerFile, err)
		}
		defer ledger.Close()

		sinks := []harvest.Sink{courseLog}
		if dbFile != "" {
			sqlite, err := database.NewSqlite(dbFile)
			if err != nil {
				return err
			}
			defer sqlite.Close()
			sinks = append(sinks, sqlite)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		h := &harvest.Harvester{
			Source: soc.NewClient(newCollector(), apiUrl),
			Sinks:  sinks,
			Ledger: ledger,
			Logger: logger,
		}
		stats, err := h.Run(ctx)
		if err != nil {
			return err
		}

		for _, campus := range soc.Campuses {
			logger.Info("Recorded courses",
				zap.String("campus", string(campus)),
				zap.Int("courses", stats.CampusCourses[campus]))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(harvestCmd)

	harvestCmd.Flags().StringVar(&apiUrl, "url", soc.BaseUrl, "Course search API endpoint")
	harvestCmd.Flags().StringVarP(&outFile, "out", "o", "masterlist.jsonl", "Line-delimited JSON master list")
	harvestCmd.Flags().StringVar(&ledgerFile, "ledger", "course_ids.txt", "Ledger of course strings seen per campus")
	harvestCmd.Flags().StringVar(&dbFile, "db", "", "Also mirror courses into this SQLite database")
}
