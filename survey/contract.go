package survey

import (
	"context"

	"github.com/joules19/chowmate-web-sub002/model"
	"github.com/pkg/errors"
)

// Loader fetches a survey by id.
type Loader interface {
	LoadSurvey(ctx context.Context, id string) (model.Survey, error)
}

// Submitter delivers a finished response. It is the only mutating call the
// wizard makes.
type Submitter interface {
	SubmitResponse(ctx context.Context, req model.SubmitRequest) (model.SubmitResult, error)
}

var ErrNoData = errors.New("survey has no data")

// Load fetches and adapts a survey. Any error here means the wizard never
// reaches the welcome screen.
func Load(ctx context.Context, loader Loader, id string, adapter Adapter) (Survey, error) {
	raw, err := loader.LoadSurvey(ctx, id)
	if err != nil {
		return Survey{}, errors.Wrapf(err, "load survey %q", id)
	}
	if raw.ID == "" {
		return Survey{}, errors.Wrapf(ErrNoData, "load survey %q", id)
	}
	s, err := adapter.Survey(raw)
	if err != nil {
		return Survey{}, errors.Wrapf(err, "load survey %q", id)
	}
	return s, nil
}
