package survey

import "math"

type Dot int

const (
	DotPending Dot = iota
	DotDone
	DotCurrent
)

type Progress struct {
	// Current is the 1-based question number, 0 on the welcome screen.
	Current int
	Total   int
	Percent int
	Dots    []Dot
}

func (c *Controller) Progress() Progress {
	n := len(c.survey.Questions)
	p := Progress{Total: n, Dots: make([]Dot, n)}

	switch c.State() {
	case StateWelcome:
		p.Percent = 0
	case StateComplete:
		p.Percent = 100
		p.Current = n
	default:
		i := c.session.Step
		p.Current = i + 1
		p.Percent = int(math.Round(100 * float64(i+1) / float64(n)))
	}

	for i, q := range c.survey.Questions {
		switch {
		case c.State() == StateQuestion && i == c.session.Step:
			p.Dots[i] = DotCurrent
		case i < c.session.Step || c.session.Answers.Answered(q.ID):
			p.Dots[i] = DotDone
		}
	}
	return p
}
