package main

import (
	"fmt"

	"github.com/spf13/cobra"

	noteflow "github.com/noteflow/noteflow.go"
)

type noteForm struct {
	Title string `validate:"required,max=120"`
	Body  string
}

var (
	addTitle string
	addBody  string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		form := noteForm{Title: addTitle, Body: addBody}
		if err := validate.Struct(form); err != nil {
			return fmt.Errorf("invalid note input: %w", err)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		if _, err := a.requireUser(ctx); err != nil {
			return err
		}

		note, err := a.notes.Create(ctx, noteflow.NoteInput{
			Title: form.Title,
			Body:  form.Body,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created %s\n", note.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Note title")
	addCmd.Flags().StringVarP(&addBody, "body", "b", "", "Note body (HTML allowed)")
	addCmd.MarkFlagRequired("title")
	rootCmd.AddCommand(addCmd)
}
