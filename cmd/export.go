package cmd

import (
	"github.com/openswoop/socharvest/pkg/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var csvFile string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [masterlist]",
	Short: "Convert the master list to a CSV file",
	Long: `Reads a line-delimited JSON master list and writes it out as CSV,
most recently offered courses first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := "masterlist.jsonl"
		if len(args) > 0 {
			in = args[0]
		}

		courses, err := report.ReadLog(in)
		if err != nil {
			return err
		}
		if err := report.WriteCourses(csvFile, courses); err != nil {
			return err
		}
		logger.Info("Wrote to file", zap.String("file", csvFile), zap.Int("courses", len(courses)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&csvFile, "out", "o", "masterlist.csv", "CSV file to write")
}
