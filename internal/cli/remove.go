package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/dkazlou/lingreader/internal/connectivity"
	"github.com/dkazlou/lingreader/internal/database"
	"github.com/dkazlou/lingreader/internal/offline"
)

// RemoveCommand evicts cached texts from the offline store.
type RemoveCommand struct {
	DatabasePath string

	textIDs []uint
}

// NewRemoveCommand creates a new RemoveCommand
func NewRemoveCommand() *RemoveCommand {
	return &RemoveCommand{}
}

// ParseFlags parses command line flags
func (cmd *RemoveCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", "./lingreader.db", "Path to the offline store")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s remove [options] <text-id> [<text-id>...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Remove cached texts from the offline store. Removing an id that\n")
		fmt.Fprintf(os.Stderr, "was never cached succeeds silently.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
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

// Run executes the remove command
func (cmd *RemoveCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open offline store: %w", err)
	}
	defer db.Close()

	svc := offline.NewService(db, nil, connectivity.Static(false))

	for _, id := range cmd.textIDs {
		if err := svc.RemoveTextFromOffline(id); err != nil {
			return err
		}
		fmt.Printf("Removed text %d from offline store\n", id)
	}

	return nil
}
