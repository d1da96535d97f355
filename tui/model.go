// Package tui hosts the survey wizard in a Bubble Tea program.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joules19/chowmate-web-sub002/log"
	"github.com/joules19/chowmate-web-sub002/model"
	"github.com/joules19/chowmate-web-sub002/render"
	"github.com/joules19/chowmate-web-sub002/survey"
	"github.com/pkg/errors"
)

const DefaultSubmitTimeout = 30 * time.Second

type Options struct {
	SurveyID  string
	Loader    survey.Loader
	Submitter survey.Submitter
	Adapter   survey.Adapter

	AutoAdvanceDelay time.Duration
	SubmitTimeout    time.Duration
	// PublicURL is the base of the link revealed by the share key.
	PublicURL string
}

type phase int

const (
	phaseLoading phase = iota
	phaseFailed
	phaseWizard
)

type (
	surveyLoadedMsg struct{ survey survey.Survey }
	loadFailedMsg   struct{ err error }
	autoAdvanceMsg  struct{ id uint64 }
	submitDoneMsg   struct {
		result model.SubmitResult
		err    error
	}
)

type Model struct {
	ctx  context.Context
	opts Options

	phase   phase
	loadErr error
	ctrl    *survey.Controller
	field   render.Field

	spinner spinner.Model
	bar     progress.Model
	help    help.Model

	notice   string
	shared   bool
	quitting bool
}

func New(ctx context.Context, opts Options) Model {
	if opts.SubmitTimeout <= 0 {
		opts.SubmitTimeout = DefaultSubmitTimeout
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = render.CursorStyle
	return Model{
		ctx:     ctx,
		opts:    opts,
		spinner: sp,
		bar:     newBar(),
		help:    help.New(),
	}
}

// Err is the load failure that ended the program, if any.
func (m Model) Err() error { return m.loadErr }

// Controller is nil until the survey has loaded.
func (m Model) Controller() *survey.Controller { return m.ctrl }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		s, err := survey.Load(m.ctx, m.opts.Loader, m.opts.SurveyID, m.opts.Adapter)
		if err != nil {
			return loadFailedMsg{err}
		}
		return surveyLoadedMsg{s}
	}
}

func (m Model) submit(req model.SubmitRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, m.opts.SubmitTimeout)
		defer cancel()
		res, err := m.opts.Submitter.SubmitResponse(ctx, req)
		return submitDoneMsg{res, err}
	}
}

func schedule(auto survey.AutoAdvance) tea.Cmd {
	return tea.Tick(auto.Delay, func(time.Time) tea.Msg {
		return autoAdvanceMsg{auto.ID}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = min(60, max(10, msg.Width-8))
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseLoading && (m.ctrl == nil || !m.ctrl.Submitting()) {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case surveyLoadedMsg:
		ctrl, err := survey.NewController(msg.survey, survey.WithAutoAdvanceDelay(m.opts.AutoAdvanceDelay))
		if err != nil {
			return m.fail(err)
		}
		log.WithFields(log.Fields{
			"survey":  msg.survey.ID,
			"session": ctrl.Session().ID,
		}).Infof("tui: survey loaded with %d questions", len(msg.survey.Questions))
		m.ctrl = ctrl
		m.phase = phaseWizard
		return m, nil

	case loadFailedMsg:
		return m.fail(msg.err)

	case autoAdvanceMsg:
		if m.ctrl == nil {
			return m, nil
		}
		return m.apply(m.ctrl.FireAutoAdvance(msg.id))

	case submitDoneMsg:
		if m.ctrl == nil {
			return m, nil
		}
		t := m.ctrl.FinishSubmit(msg.result, msg.err)
		if msg.err != nil {
			m.notice = "Your response could not be sent: " + msg.err.Error() + ". Press enter to try again."
		}
		return m.apply(t)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.field != nil {
		var cmd tea.Cmd
		m.field, _, cmd = m.field.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	log.Errorf("tui: %s", err)
	m.phase = phaseFailed
	m.loadErr = err
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m.quit()
	}
	switch m.phase {
	case phaseLoading:
		return m, nil
	case phaseFailed:
		return m.quit()
	}

	switch m.ctrl.State() {
	case survey.StateWelcome:
		if key.Matches(msg, keys.Start) {
			return m.apply(m.ctrl.Start())
		}
		return m, nil

	case survey.StateComplete:
		switch {
		case key.Matches(msg, keys.Share):
			if !m.shared {
				log.WithFields(log.Fields{"survey": m.ctrl.Survey().ID}).Info("tui: share")
			}
			m.shared = true
		case key.Matches(msg, keys.Done):
			return m.quit()
		}
		return m, nil
	}

	if m.ctrl.Submitting() {
		return m, nil
	}
	switch {
	case key.Matches(msg, keys.Next):
		return m.apply(m.ctrl.Next())
	case key.Matches(msg, keys.Prev):
		return m.apply(m.ctrl.Previous())
	}
	if m.field == nil {
		return m, nil
	}

	var (
		cmds   []tea.Cmd
		cmd    tea.Cmd
		change *render.Change
	)
	m.field, change, cmd = m.field.Update(msg)
	cmds = append(cmds, cmd)
	if change != nil {
		auto, err := m.ctrl.SetAnswer(change.Value)
		if err != nil {
			log.Warnf("tui: answer not recorded: %s", err)
		}
		if m.ctrl.SubmitError() == nil {
			m.notice = ""
		}
		if auto != nil {
			cmds = append(cmds, schedule(*auto))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) apply(t survey.Transition) (tea.Model, tea.Cmd) {
	switch t.Outcome {
	case survey.Moved:
		m.notice = ""
		return m, m.showCurrent()
	case survey.Blocked:
		m.notice = "This question needs an answer before you continue."
		return m, nil
	case survey.Submit:
		m.notice = ""
		return m, tea.Batch(m.submit(*t.Request), m.spinner.Tick)
	}
	return m, nil
}

// showCurrent rebuilds the input for the question on screen with its saved
// value.
func (m *Model) showCurrent() tea.Cmd {
	m.field = nil
	q, ok := m.ctrl.Current()
	if !ok {
		return nil
	}
	v, _ := m.ctrl.Answer(q.ID)
	f, err := render.New(q, v)
	if err != nil {
		log.Errorf("tui: %s", errors.Wrapf(err, "question %q", q.ID))
		return nil
	}
	m.field = f
	return f.Focus()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.ctrl != nil {
		m.ctrl.Close()
	}
	m.quitting = true
	return m, tea.Quit
}

func (m Model) shareURL() string {
	return strings.TrimRight(m.opts.PublicURL, "/") + "/surveys/" + m.ctrl.Survey().ID
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.phase {
	case phaseLoading:
		return frameStyle.Render(m.spinner.View() + " Loading survey…")
	case phaseFailed:
		return frameStyle.Render(loadErrorView(m.loadErr))
	}

	switch m.ctrl.State() {
	case survey.StateWelcome:
		return frameStyle.Render(welcomeView(m.ctrl.Survey()))
	case survey.StateComplete:
		res, ok := m.ctrl.Result()
		return frameStyle.Render(completeView(m.ctrl.Survey(), res, ok, m.shareURL(), m.shared))
	}

	var b strings.Builder
	b.WriteString(progressView(m.bar, m.ctrl.Progress()))
	b.WriteString("\n\n")
	if m.field != nil {
		b.WriteString(m.field.View())
	}
	b.WriteString("\n\n")
	if m.notice != "" {
		b.WriteString(banner(m.notice))
		b.WriteString("\n")
	}
	if m.ctrl.Submitting() {
		b.WriteString(m.spinner.View() + " Submitting…")
	} else {
		b.WriteString(m.footer())
	}
	return frameStyle.Render(b.String())
}

func (m Model) footer() string {
	bindings := []key.Binding{keys.Next, keys.Prev}
	if m.field != nil {
		bindings = append(render.Help(m.field), bindings...)
	}
	if !m.ctrl.CanAdvance() {
		bindings[len(bindings)-2].SetEnabled(false)
	}
	return m.help.ShortHelpView(bindings)
}

// Run drives the wizard until the respondent quits. The returned error is
// the load failure, if that is what ended the session.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return errors.Wrap(err, "tui")
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
