package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		if _, err := a.requireUser(ctx); err != nil {
			return err
		}
		if err := a.notes.Load(ctx); err != nil {
			return fmt.Errorf("could not load notes: %w", err)
		}
		if _, ok := a.notes.Get(args[0]); !ok {
			return fmt.Errorf("no note with id %s", args[0])
		}

		return a.notes.Delete(ctx, args[0])
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}
