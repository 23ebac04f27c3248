package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/aionboard/internal/cli/formatter"
)

func newTokenCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the HTTP API",
		Long:  "Mints a signed token for --user. Intended for local development and scripting.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Tokens == nil {
				return fmt.Errorf("auth.jwt_secret must be set to mint tokens (AIONBOARD_AUTH_JWT_SECRET)")
			}
			if email == "" {
				email = app.Email
			}
			token, expires, err := app.Tokens.Issue(app.UserID, email)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, token)
			fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim(fmt.Sprintf("expires %s", expires.Local().Format("2006-01-02 15:04"))))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email claim (default from user.email)")
	return cmd
}
