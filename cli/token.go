package cli

import (
	"fmt"
	"time"

	"github.com/joules19/chowmate-web-sub002/app"
	"github.com/joules19/chowmate-web-sub002/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func tokenCmd(cfg *config.Config) *cobra.Command {
	var (
		subject string
		roles   []string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for a respondent or an admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.TokenSecret == "" {
				return errors.New("missing parameter --token-secret")
			}
			if subject == "" {
				return errors.New("missing parameter --subject")
			}
			token, err := app.IssueToken(app.NewJWT(cfg.TokenSecret), subject, roles, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "who the token identifies")
	cmd.Flags().StringSliceVar(&roles, "role", nil, "role to grant (repeatable), e.g. admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime (0 for no expiry)")
	return cmd
}
