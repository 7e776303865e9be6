package main

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	noteflow "github.com/noteflow/noteflow.go"
)

// validate checks form input at the edge, before anything reaches the
// gateway. Server-side rules still apply; this only catches the obvious.
var validate = validator.New(validator.WithRequiredStructEnabled())

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and store the access token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		form := loginForm{Email: loginEmail, Password: loginPassword}
		if err := validate.Struct(form); err != nil {
			return fmt.Errorf("invalid login input: %w", err)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		res, err := a.client.Login(ctx, noteflow.Credentials{
			Email:    form.Email,
			Password: form.Password,
		})
		if err != nil {
			return fmt.Errorf("could not reach the notes server: %w", err)
		}
		if res.Failed {
			return fmt.Errorf("login failed: %s", res.Message)
		}

		// The gateway hands the token back; persisting it is our job.
		if err := a.session.SetToken(res.Data.AccessToken); err != nil {
			return err
		}

		user, err := a.session.Bootstrap(ctx, a.client)
		if err != nil {
			return err
		}
		if user != nil {
			fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
		} else {
			fmt.Println("Logged in")
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(loginCmd)
}
