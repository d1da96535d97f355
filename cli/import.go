package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/joules19/chowmate-web-sub002/cache"
	"github.com/joules19/chowmate-web-sub002/config"
	"github.com/joules19/chowmate-web-sub002/database"
	"github.com/joules19/chowmate-web-sub002/log"
	"github.com/joules19/chowmate-web-sub002/model"
	"github.com/joules19/chowmate-web-sub002/survey"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func importCmd(cfg *config.Config) *cobra.Command {
	var lenient bool
	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Store a survey definition, replacing any survey with the same id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSurvey(args[0], lenient)
			if err != nil {
				return err
			}
			version, err := importSurvey(cmd.Context(), *cfg, s)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (%d questions, version %d)\n", s.ID, len(s.Questions), version)
			return nil
		},
	}
	cmd.Flags().BoolVar(&lenient, "lenient", false, "accept unknown question types (respondents see them as short text)")
	return cmd
}

func readSurvey(path string, lenient bool) (model.Survey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Survey{}, errors.Wrap(err, "import.read")
	}
	s := model.Survey{}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return model.Survey{}, errors.Wrapf(err, "import.parse %s", path)
	}

	if !lenient {
		if err := survey.CheckDefinition(s); err != nil {
			return model.Survey{}, errors.Wrapf(err, "import.check %s", path)
		}
		return s, nil
	}
	if s.ID == "" {
		return model.Survey{}, errors.Errorf("import.check %s: survey id is empty", path)
	}
	// logs each fallback
	if _, err := (survey.Adapter{Policy: survey.FallbackToShortText}).Survey(s); err != nil {
		return model.Survey{}, errors.Wrapf(err, "import.check %s", path)
	}
	return s, nil
}

func importSurvey(ctx context.Context, cfg config.Config, s model.Survey) (int, error) {
	db, err := database.Open(cfg.DBUrl)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	version, err := database.SaveSurvey(ctx, db, s)
	if err != nil {
		return 0, err
	}

	// a running server with an in-process cache picks the change up on expiry
	if cfg.RedisURL != "" {
		c, err := cache.NewRedis(ctx, cfg.RedisURL, 0)
		if err != nil {
			log.Warnf("import.cache: %s", err)
			return version, nil
		}
		defer c.Close()
		if err := c.Invalidate(ctx, s.ID); err != nil {
			log.Warnf("import.cache: %s", err)
		}
	}
	return version, nil
}
