package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a single note",
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

		res, err := a.client.GetNote(ctx, args[0])
		if err != nil {
			return fmt.Errorf("could not reach the notes server: %w", err)
		}
		if res.Failed {
			return fmt.Errorf("could not fetch note: %s", res.Message)
		}

		n := res.Data
		state := "active"
		if n.Archived {
			state = "archived"
		}
		fmt.Printf("%s (%s)\n", n.Title, state)
		fmt.Printf("created %s\n\n", n.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Println(n.Body)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
