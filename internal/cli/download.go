package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dkazlou/lingreader/internal/connectivity"
	"github.com/dkazlou/lingreader/internal/database"
	"github.com/dkazlou/lingreader/internal/offline"
	"github.com/dkazlou/lingreader/internal/remote"
)

// DownloadCommand caches one or more texts for offline reading.
type DownloadCommand struct {
	DatabasePath string
	RemoteURL    string
	Verbose      bool

	textIDs []uint
}

// NewDownloadCommand creates a new DownloadCommand
func NewDownloadCommand() *DownloadCommand {
	return &DownloadCommand{}
}

// ParseFlags parses command line flags
func (cmd *DownloadCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("download", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", "./lingreader.db", "Path to the offline store")
	fs.StringVar(&cmd.RemoteURL, "remote", "http://localhost:8080", "Base URL of the remote source")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print progress checkpoints")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s download [options] <text-id> [<text-id>...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Download texts from the remote source into the offline store.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s download 42\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s download -verbose -remote https://texts.example.org 7 8 9\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("at least one text id is required")
	}
	for _, arg := range fs.Args() {
		id, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid text id %q: %w", arg, err)
		}
		cmd.textIDs = append(cmd.textIDs, uint(id))
	}

	return nil
}

// Run executes the download command
func (cmd *DownloadCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open offline store: %w", err)
	}
	defer db.Close()

	client := remote.NewClient(cmd.RemoteURL, 15*time.Second)
	svc := offline.NewService(db, client, connectivity.Static(true))

	var onProgress offline.ProgressFunc
	if cmd.Verbose {
		onProgress = func(percent int, label string) {
			fmt.Printf("  %3d%% %s\n", percent, label)
		}
	}

	for _, id := range cmd.textIDs {
		fmt.Printf("Downloading text %d...\n", id)
		if err := svc.DownloadTextForOffline(context.Background(), id, onProgress); err != nil {
			return fmt.Errorf("text %d: %w", id, err)
		}
		fmt.Printf("Text %d cached for offline reading\n", id)
	}

	return nil
}
