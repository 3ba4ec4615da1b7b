package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	tokenEmail    string
	tokenPassword string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a session token for a configured user",
	Long: `Validate the given credentials and print the session token the server would set
in the auth_token cookie. Useful for calling admin endpoints with curl:

  curl -b "auth_token=$(server token --email admin@sunmoon.ac.kr --password admin123)" \
    localhost:8080/dashboard/stats`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		p, err := a.auth.ValidateCredentials(ctx, tokenEmail, tokenPassword)
		if err != nil {
			return err
		}
		token, err := a.auth.CreateToken(p)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "user email")
	tokenCmd.Flags().StringVar(&tokenPassword, "password", "", "user password")
	_ = tokenCmd.MarkFlagRequired("email")
	_ = tokenCmd.MarkFlagRequired("password")
}
