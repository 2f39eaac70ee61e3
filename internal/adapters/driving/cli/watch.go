package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk-cli/internal/adapters/driving/watch"
	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Upload files dropped into a folder",
	Long: `Watch a folder and upload every file that appears in it.

Files already in the folder are uploaded first. A file is uploaded once
per content: copies and rewrites with identical bytes are skipped. Hidden
files and sub-folders are ignored.

Examples:
  docdesk watch ~/inbox --type safety --department operations
  docdesk watch ./scans --type maintenance --department engineering --once`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var watchHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent folder uploads",
	Args:  cobra.NoArgs,
	RunE:  runWatchHistory,
}

// Flags for watch.
var (
	watchType       string
	watchDepartment string
	watchPriority   string
	watchSettle     time.Duration
	watchOnce       bool
	watchLimit      int
)

func init() {
	f := watchCmd.Flags()
	f.StringVar(&watchType, "type", "", "document type for every upload")
	f.StringVar(&watchDepartment, "department", "", "department for every upload")
	f.StringVar(&watchPriority, "priority", "", "priority for every upload")
	f.DurationVar(&watchSettle, "settle", watch.DefaultSettle, "quiet period before a changed file is uploaded")
	f.BoolVar(&watchOnce, "once", false, "upload what is there now and exit")

	watchHistoryCmd.Flags().IntVarP(&watchLimit, "limit", "n", 20, "number of entries")

	watchCmd.AddCommand(watchHistoryCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := documentSession(cmd); err != nil {
		return err
	}
	if uploadJournal == nil {
		return errors.New("upload journal not configured")
	}

	w, err := watch.New(watch.Config{
		Dir:        args[0],
		Type:       domain.DocumentType(watchType),
		Department: watchDepartment,
		Priority:   domain.Priority(watchPriority),
		Settle:     watchSettle,
	}, documentService, uploadJournal)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if watchOnce {
		records, err := w.Scan(ctx)
		for _, rec := range records {
			printUploadRecord(cmd, rec)
		}
		if err != nil {
			return err
		}
		cmd.Printf("%d file(s) processed.\n", len(records))
		return nil
	}

	cmd.Printf("Watching %s (ctrl+c to stop)\n", args[0])
	return w.Run(ctx, func(rec domain.UploadRecord) {
		printUploadRecord(cmd, rec)
	})
}

func runWatchHistory(cmd *cobra.Command, _ []string) error {
	if uploadJournal == nil {
		return errors.New("upload journal not configured")
	}

	records, err := uploadJournal.Recent(commandContext(cmd), watchLimit)
	if err != nil {
		return fmt.Errorf("failed to read upload journal: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd, records)
	}
	if len(records) == 0 {
		cmd.Println("No uploads yet.")
		return nil
	}
	for _, rec := range records {
		printUploadRecord(cmd, rec)
	}
	return nil
}

func printUploadRecord(cmd *cobra.Command, rec domain.UploadRecord) {
	if rec.Succeeded() {
		cmd.Printf("  %s  %s -> document %s\n", formatTime(rec.UploadedAt), rec.Path, rec.DocumentID)
		return
	}
	cmd.Printf("  %s  %s failed: %s\n", formatTime(rec.UploadedAt), rec.Path, rec.Error)
}
