package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"taskflow/internal/auth"
)

// loginCmd implements 'taskflow login'. Passing --name signs up instead of in.
func loginCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in (any valid-looking credentials are accepted)",
		Run: func(_ *cobra.Command, _ []string) {
			a := mustOpen()
			defer a.Close()

			mode := auth.SignIn
			if name != "" {
				mode = auth.SignUp
			}
			u, err := auth.NewSession(a.kv).Login(context.Background(), mode, auth.Credentials{
				Name:     name,
				Email:    email,
				Password: password,
			})
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatUser(u))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Full name (signs up)")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password, at least 6 characters")
	return cmd
}

// logoutCmd implements 'taskflow logout'.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the signed-in user",
		Run: func(_ *cobra.Command, _ []string) {
			a := mustOpen()
			defer a.Close()

			if err := auth.NewSession(a.kv).Logout(context.Background()); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage("Signed out"))
		},
	}
}

// whoamiCmd implements 'taskflow whoami'.
func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Run: func(_ *cobra.Command, _ []string) {
			a := mustOpen()
			defer a.Close()

			u, ok := auth.NewSession(a.kv).Current(context.Background())
			if !ok {
				printError(errors.New("not signed in"))
			}
			printOutput(formatter.FormatUser(u))
		},
	}
}
