// Package client talks to the survey service over HTTP.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/joules19/chowmate-web-sub002/log"
	"github.com/joules19/chowmate-web-sub002/model"
	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("survey not found")
	// ErrRejected means the service refused the response as invalid.
	// Sending it again unchanged will not help.
	ErrRejected = errors.New("response rejected")
)

// StatusError is any other non-success answer from the service.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("survey service: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("survey service: %d %s", e.Status, e.Message)
}

type Client struct {
	base  *url.URL
	http  *http.Client
	token string
}

type Option func(*Client)

// WithToken sends a bearer token identifying the respondent.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "client.base_url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("client.base_url: %q is not an absolute URL", baseURL)
	}
	c := &Client{base: u, http: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) endpoint(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return c.base.String() + "/api/" + strings.Join(escaped, "/")
}

// LoadSurvey implements survey.Loader.
func (c *Client) LoadSurvey(ctx context.Context, id string) (model.Survey, error) {
	var s model.Survey
	err := c.do(ctx, http.MethodGet, c.endpoint("surveys", id), nil, &s)
	if err != nil {
		return model.Survey{}, err
	}
	return s, nil
}

// SubmitResponse implements survey.Submitter.
func (c *Client) SubmitResponse(ctx context.Context, req model.SubmitRequest) (model.SubmitResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return model.SubmitResult{}, errors.Wrap(err, "client.submit.encode")
	}
	var res model.SubmitResult
	err = c.do(ctx, http.MethodPost, c.endpoint("surveys", req.SurveyID, "responses"), body, &res)
	if err != nil {
		return model.SubmitResult{}, err
	}
	return res, nil
}

// ListResponses returns every stored response to a survey. It needs an
// admin token.
func (c *Client) ListResponses(ctx context.Context, surveyID string) ([]model.Response, error) {
	var out []model.Response
	err := c.do(ctx, http.MethodGet, c.endpoint("admin", "surveys", surveyID, "responses"), nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, target string, body []byte, out any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return errors.Wrap(err, "client.request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, target)
	}
	defer resp.Body.Close()
	log.Debugf("client: %s %s -> %d", method, target, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "client.read_body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(data))
		switch resp.StatusCode {
		case http.StatusNotFound:
			return errors.Wrapf(ErrNotFound, "%s %s", method, target)
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return errors.Wrap(ErrRejected, msg)
		}
		return &StatusError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "client.decode")
	}
	return nil
}
