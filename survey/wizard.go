package survey

import (
	"context"
	"time"

	"github.com/gofrs/uuid"
	"github.com/joules19/chowmate-web-sub002/log"
	"github.com/joules19/chowmate-web-sub002/model"
	"github.com/pkg/errors"
)

var (
	ErrValueShape  = errors.New("value shape does not match question type")
	ErrNotQuestion = errors.New("no question is being displayed")
	ErrSubmitting  = errors.New("submission in progress")
)

// StepWelcome is the step index of the welcome screen. Steps 0..N-1 are
// questions and N is the completion screen.
const StepWelcome = -1

// DefaultAutoAdvanceDelay gives the respondent time to see their choice
// before the next question replaces it.
const DefaultAutoAdvanceDelay = 800 * time.Millisecond

type State int

const (
	StateWelcome State = iota
	StateQuestion
	StateComplete
)

// Session is one respondent's progress. It lives only in memory.
type Session struct {
	ID      string
	Step    int
	Answers Answers
}

// Outcome tells the host what a navigation request did.
type Outcome int

const (
	// Ignored: nothing changed (stale timer, busy, terminal state).
	Ignored Outcome = iota
	// Moved: the step index changed.
	Moved
	// Blocked: the advance gate refused to leave the current question.
	Blocked
	// Submit: the last question was passed. The host must hand Request to a
	// Submitter and report back with FinishSubmit.
	Submit
)

type Transition struct {
	Outcome Outcome
	From    int
	To      int
	Request *model.SubmitRequest
}

// AutoAdvance is a scheduled "next". The host delivers it back through
// FireAutoAdvance once Delay has elapsed.
type AutoAdvance struct {
	ID    uint64
	Step  int
	Delay time.Duration
}

// Controller is the wizard state machine. It is not safe for concurrent
// use: all calls must come from the same event loop.
type Controller struct {
	survey  Survey
	session Session
	delay   time.Duration

	// single pending auto-advance slot; zero id means empty
	pending AutoAdvance
	seq     uint64

	submitting bool
	submitErr  error
	result     *model.SubmitResult
	closed     bool
}

type Option func(*Controller)

func WithAutoAdvanceDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.delay = d
		}
	}
}

func WithSessionID(id string) Option {
	return func(c *Controller) {
		c.session.ID = id
	}
}

// NewController starts a session on a canonical survey.
func NewController(s Survey, opts ...Option) (*Controller, error) {
	c := &Controller{
		survey: s,
		delay:  DefaultAutoAdvanceDelay,
		session: Session{
			Step:    StepWelcome,
			Answers: Answers{},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.session.ID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return nil, errors.Wrap(err, "survey.session_id")
		}
		c.session.ID = id.String()
	}
	return c, nil
}

func (c *Controller) Survey() Survey { return c.survey }

// Session returns a copy of the session.
func (c *Controller) Session() Session {
	s := c.session
	s.Answers = c.session.Answers.Clone()
	return s
}

func (c *Controller) Step() int { return c.session.Step }

func (c *Controller) State() State {
	switch {
	case c.session.Step <= StepWelcome:
		return StateWelcome
	case c.session.Step >= len(c.survey.Questions):
		return StateComplete
	default:
		return StateQuestion
	}
}

// Current returns the question on screen.
func (c *Controller) Current() (Question, bool) {
	if c.State() != StateQuestion {
		return Question{}, false
	}
	return c.survey.Questions[c.session.Step], true
}

func (c *Controller) Answer(questionID string) (Value, bool) {
	v, ok := c.session.Answers[questionID]
	if !ok {
		return nil, false
	}
	return v.clone(), true
}

func (c *Controller) Answers() Answers { return c.session.Answers.Clone() }

func (c *Controller) Submitting() bool { return c.submitting }

// SubmitError is the last submission failure, cleared by the next attempt.
func (c *Controller) SubmitError() error { return c.submitErr }

// Result is set once the submission succeeded.
func (c *Controller) Result() (model.SubmitResult, bool) {
	if c.result == nil {
		return model.SubmitResult{}, false
	}
	return *c.result, true
}

// Pending returns the scheduled auto-advance, if any.
func (c *Controller) Pending() (AutoAdvance, bool) {
	return c.pending, c.pending.ID != 0
}

// CanAdvance is the advance gate for the question on screen.
func (c *Controller) CanAdvance() bool {
	if c.State() != StateQuestion {
		return false
	}
	return c.canAdvanceAt(c.session.Step)
}

func (c *Controller) canAdvanceAt(i int) bool {
	q := c.survey.Questions[i]
	if !q.Required {
		return true
	}
	return c.session.Answers.Answered(q.ID)
}

// Start leaves the welcome screen. A survey without questions goes straight
// to the completion screen.
func (c *Controller) Start() Transition {
	if c.closed || c.State() != StateWelcome {
		return Transition{Outcome: Ignored, From: c.session.Step, To: c.session.Step}
	}
	if len(c.survey.Questions) == 0 {
		return c.moveTo(len(c.survey.Questions))
	}
	return c.moveTo(0)
}

// Next moves forward from the current question when the gate allows it.
// Passing the last question asks the host to submit instead.
func (c *Controller) Next() Transition {
	step := c.session.Step
	if c.closed || c.submitting || c.State() != StateQuestion {
		return Transition{Outcome: Ignored, From: step, To: step}
	}
	if !c.canAdvanceAt(step) {
		return Transition{Outcome: Blocked, From: step, To: step}
	}
	if step == len(c.survey.Questions)-1 {
		c.cancelPending()
		req := BuildRequest(c.survey, c.session.ID, c.session.Answers)
		c.submitting = true
		c.submitErr = nil
		return Transition{Outcome: Submit, From: step, To: step, Request: &req}
	}
	return c.moveTo(step + 1)
}

// Previous moves back one step without any gate. From the first question it
// returns to the welcome screen.
func (c *Controller) Previous() Transition {
	step := c.session.Step
	if c.closed || c.submitting || c.State() != StateQuestion {
		return Transition{Outcome: Ignored, From: step, To: step}
	}
	return c.moveTo(step - 1)
}

func (c *Controller) moveTo(step int) Transition {
	from := c.session.Step
	c.cancelPending()
	c.session.Step = step
	return Transition{Outcome: Moved, From: from, To: step}
}

// SetAnswer records v for the question on screen, replacing any earlier
// value. Any pending auto-advance is cancelled; a new one is returned when
// the question type advances automatically.
func (c *Controller) SetAnswer(v Value) (*AutoAdvance, error) {
	if c.submitting {
		return nil, ErrSubmitting
	}
	q, ok := c.Current()
	if !ok || c.closed {
		return nil, ErrNotQuestion
	}
	if v == nil || v.Shape() != ShapeOf(q.Type) {
		return nil, errors.Wrapf(ErrValueShape, "question %q (%s)", q.ID, q.Type)
	}

	c.cancelPending()
	c.session.Answers[q.ID] = v.clone()

	if !q.Type.AutoAdvances() || v.IsEmpty() {
		return nil, nil
	}
	c.seq++
	c.pending = AutoAdvance{ID: c.seq, Step: c.session.Step, Delay: c.delay}
	auto := c.pending
	return &auto, nil
}

// FireAutoAdvance runs the scheduled "next" identified by id. Anything but
// the currently pending id is stale and ignored.
func (c *Controller) FireAutoAdvance(id uint64) Transition {
	step := c.session.Step
	if id == 0 || c.pending.ID != id || c.pending.Step != step {
		log.Debugf("survey.auto_advance: stale timer %d ignored", id)
		return Transition{Outcome: Ignored, From: step, To: step}
	}
	c.cancelPending()
	return c.Next()
}

// CancelPending drops the scheduled auto-advance, if any.
func (c *Controller) CancelPending() {
	c.cancelPending()
}

func (c *Controller) cancelPending() {
	c.pending = AutoAdvance{}
}

// FinishSubmit reports the outcome of the request returned by Next. On
// failure the session stays on the last question with every answer kept.
func (c *Controller) FinishSubmit(res model.SubmitResult, err error) Transition {
	step := c.session.Step
	if !c.submitting {
		return Transition{Outcome: Ignored, From: step, To: step}
	}
	c.submitting = false
	if err != nil {
		c.submitErr = err
		log.WithFields(log.Fields{
			"survey":  c.survey.ID,
			"session": c.session.ID,
		}).Warnf("survey.submit: %s", err)
		return Transition{Outcome: Ignored, From: step, To: step}
	}
	c.submitErr = nil
	c.result = &res
	return c.moveTo(len(c.survey.Questions))
}

// Submit is a synchronous Next for hosts without an event loop: when the
// last question is passed it calls submitter and reports the result.
func (c *Controller) Submit(ctx context.Context, submitter Submitter) (Transition, error) {
	t := c.Next()
	if t.Outcome != Submit {
		return t, nil
	}
	res, err := submitter.SubmitResponse(ctx, *t.Request)
	return c.FinishSubmit(res, err), err
}

// Close ends the session. Pending timers are dropped and later events are
// ignored.
func (c *Controller) Close() {
	c.cancelPending()
	c.closed = true
}
