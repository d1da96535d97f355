package cli

import (
	"net/http"

	"github.com/joules19/chowmate-web-sub002/client"
	"github.com/joules19/chowmate-web-sub002/config"
	"github.com/joules19/chowmate-web-sub002/log"
	"github.com/joules19/chowmate-web-sub002/survey"
	"github.com/joules19/chowmate-web-sub002/tui"
	"github.com/spf13/cobra"
)

func takeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "take <survey-id>",
		Short: "Answer a survey in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// the screen belongs to the wizard; logs go to a file or nowhere
			closer, err := log.ToFile(cfg.LogFile)
			if err != nil {
				return err
			}
			defer closer.Close()

			c, err := client.New(cfg.ServerURL,
				client.WithToken(cfg.Token),
				client.WithHTTPClient(&http.Client{}),
			)
			if err != nil {
				return err
			}

			policy := survey.FallbackToShortText
			if cfg.StrictTypes {
				policy = survey.RejectUnknownType
			}

			return tui.Run(cmd.Context(), tui.Options{
				SurveyID:         args[0],
				Loader:           c,
				Submitter:        c,
				Adapter:          survey.Adapter{Policy: policy},
				AutoAdvanceDelay: cfg.AutoAdvanceDelay,
				SubmitTimeout:    cfg.SubmitTimeout,
				PublicURL:        cfg.ShareBase(),
			})
		},
	}
	config.BindClient(cmd.Flags(), cfg)
	return cmd
}
