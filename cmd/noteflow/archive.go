package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Move a note to the archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleArchive(cmd.Context(), args[0], true)
	},
}

var unarchiveCmd = &cobra.Command{
	Use:   "unarchive <id>",
	Short: "Move a note back to the active list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggleArchive(cmd.Context(), args[0], false)
	},
}

// toggleArchive loads the collection, checks the note is on the side the
// user thinks it is, and flips it. ToggleArchive itself only knows "flip",
// so the direction check lives here in the view.
func toggleArchive(ctx context.Context, id string, wantArchived bool) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if _, err := a.requireUser(ctx); err != nil {
		return err
	}
	if err := a.notes.Load(ctx); err != nil {
		return fmt.Errorf("could not load notes: %w", err)
	}

	note, ok := a.notes.Get(id)
	if !ok {
		return fmt.Errorf("no note with id %s", id)
	}
	if note.Archived == wantArchived {
		if wantArchived {
			fmt.Println("Note is already archived")
		} else {
			fmt.Println("Note is already active")
		}
		return nil
	}

	return a.notes.ToggleArchive(ctx, id)
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(unarchiveCmd)
}
