package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dkazlou/lingreader/internal/connectivity"
	"github.com/dkazlou/lingreader/internal/database"
	"github.com/dkazlou/lingreader/internal/offline"
)

// SummaryCommand prints what is currently cached for offline reading.
type SummaryCommand struct {
	DatabasePath string
}

// NewSummaryCommand creates a new SummaryCommand
func NewSummaryCommand() *SummaryCommand {
	return &SummaryCommand{}
}

// ParseFlags parses command line flags
func (cmd *SummaryCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", "./lingreader.db", "Path to the offline store")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s summary [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print the offline cache summary grouped by language.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the summary command
func (cmd *SummaryCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open offline store: %w", err)
	}
	defer db.Close()

	svc := offline.NewService(db, nil, connectivity.Static(false))

	summary := svc.OfflineSummary()
	fmt.Printf("Cached texts: %d (%d bytes)\n", summary.TotalTexts, summary.TotalSizeBytes)
	for _, lang := range summary.ByLanguage {
		fmt.Printf("  %-20s %3d texts  %10d bytes\n", lang.LangName, lang.TextCount, lang.SizeBytes)
	}

	if last := svc.LastSyncTime(); last != nil {
		fmt.Printf("Last download: %s\n", last.Format(time.RFC3339))
	} else {
		fmt.Println("Last download: never")
	}

	return nil
}
