package main

import (
	"fmt"

	"github.com/spf13/cobra"

	noteflow "github.com/noteflow/noteflow.go"
)

var (
	listArchived bool
	listKeyword  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	Args:  cobra.NoArgs,
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

		kind := noteflow.FilterActive
		if listArchived {
			kind = noteflow.FilterArchived
		}
		notes := a.notes.Filter(kind, listKeyword)
		if len(notes) == 0 {
			fmt.Println("No notes found")
			return nil
		}
		for _, n := range notes {
			fmt.Printf("%s  %s  %s\n", n.ID, n.CreatedAt.Format("2006-01-02 15:04"), n.Title)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listArchived, "archived", false, "Show archived notes instead of active ones")
	listCmd.Flags().StringVarP(&listKeyword, "keyword", "k", "", "Only titles containing this keyword")
	rootCmd.AddCommand(listCmd)
}
