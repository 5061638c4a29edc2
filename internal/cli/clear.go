package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/dkazlou/lingreader/internal/connectivity"
	"github.com/dkazlou/lingreader/internal/database"
	"github.com/dkazlou/lingreader/internal/offline"
)

// ClearCommand wipes the entire offline store.
type ClearCommand struct {
	DatabasePath string
	Force        bool
}

// NewClearCommand creates a new ClearCommand
func NewClearCommand() *ClearCommand {
	return &ClearCommand{}
}

// ParseFlags parses command line flags
func (cmd *ClearCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", "./lingreader.db", "Path to the offline store")
	fs.BoolVar(&cmd.Force, "force", false, "Skip the confirmation prompt")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s clear [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Forget everything: wipe all cached texts, word payloads, languages,\n")
		fmt.Fprintf(os.Stderr, "sync metadata and pending operations.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the clear command
func (cmd *ClearCommand) Run() error {
	if !cmd.Force {
		fmt.Print("This wipes the whole offline store. Continue? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted")
			return nil
		}
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open offline store: %w", err)
	}
	defer db.Close()

	svc := offline.NewService(db, nil, connectivity.Static(false))
	if err := svc.ClearAllOfflineData(); err != nil {
		return err
	}

	fmt.Println("Offline store cleared")
	return nil
}
