package main

import (
	"fmt"

	"github.com/spf13/cobra"

	noteflow "github.com/noteflow/noteflow.go"
)

type registerForm struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

var (
	registerName     string
	registerEmail    string
	registerPassword string
	registerConfirm  string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		form := registerForm{
			Name:            registerName,
			Email:           registerEmail,
			Password:        registerPassword,
			ConfirmPassword: registerConfirm,
		}
		if err := validate.Struct(form); err != nil {
			return fmt.Errorf("invalid registration input: %w", err)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		res, err := a.client.Register(cmd.Context(), noteflow.RegisterInput{
			Name:     form.Name,
			Email:    form.Email,
			Password: form.Password,
		})
		if err != nil {
			return fmt.Errorf("could not reach the notes server: %w", err)
		}
		if res.Failed {
			return fmt.Errorf("registration failed: %s", res.Message)
		}

		fmt.Println("Account created; run 'noteflow login' to sign in")
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Account email")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Account password")
	registerCmd.Flags().StringVar(&registerConfirm, "confirm-password", "", "Repeat the password")
	registerCmd.MarkFlagRequired("name")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")
	registerCmd.MarkFlagRequired("confirm-password")
	rootCmd.AddCommand(registerCmd)
}
