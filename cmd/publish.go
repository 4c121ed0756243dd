package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/openswoop/socharvest/pkg/database"
	"github.com/openswoop/socharvest/pkg/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	projectID  string
	datasetID  string
	topicID    string
	sqliteFile string
	dryRun     bool
)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish [masterlist]",
	Short: "Merge the master list into BigQuery",
	Long: `Loads a master list and merges it into the BigQuery courses table
by uid, then announces the refresh on Pub/Sub. With --sqlite the
courses are loaded into a local database instead.`,
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
		logger.Info("Loaded master list", zap.String("file", in), zap.Int("courses", len(courses)))

		if sqliteFile == "" && projectID == "" {
			return fmt.Errorf("--project is required to publish to BigQuery")
		}
		if dryRun {
			fmt.Println("Dry run: data will not be inserted")
			return nil
		}

		ctx := context.Background()
		var db database.Database
		if sqliteFile != "" {
			db, err = database.NewSqlite(sqliteFile)
		} else {
			db, err = database.NewBigQuery(ctx, projectID, datasetID)
		}
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		if err := db.SaveCourses(courses); err != nil {
			return fmt.Errorf("failed to save courses: %w", err)
		}
		if sqliteFile != "" {
			logger.Info("Saved to database", zap.String("file", sqliteFile))
			return nil
		}

		return announce(ctx, len(courses))
	},
}

func announce(ctx context.Context, count int) error {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	msg, err := refreshMessage(datasetID, count)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	// Publish an event
	topic := client.Topic(topicID)
	defer topic.Stop()
	res := topic.Publish(ctx, &pubsub.Message{Data: msg})
	id, err := res.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	logger.Info("Published refresh", zap.String("topic", topicID), zap.String("message_id", id))
	return nil
}

// refreshMessage is the Pub/Sub payload announcing a merged master list.
func refreshMessage(dataset string, count int) ([]byte, error) {
	return json.Marshal(struct {
		Dataset string `json:"dataset"`
		Courses int    `json:"courses"`
	}{dataset, count})
}

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().StringVar(&projectID, "project", "", "Google Cloud project ID")
	publishCmd.Flags().StringVar(&datasetID, "dataset", "socharvest", "BigQuery dataset")
	publishCmd.Flags().StringVar(&topicID, "topic", "catalog-refreshed", "Pub/Sub topic announcing the refresh")
	publishCmd.Flags().StringVar(&sqliteFile, "sqlite", "", "Load into this SQLite database instead of BigQuery")
	publishCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run without modifying the database (default: false)")
}
