package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joules19/chowmate-web-sub002/app"
	"github.com/joules19/chowmate-web-sub002/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const surveyYAML = `
id: feedback
title: Delivery feedback
incentive: 10% off your next order
questions:
  - id: q1
    text: How was your order?
    type: 0
    required: true
    order: 1
  - id: q2
    text: Which dish?
    type: single-choice
    options: [jollof, suya]
    order: 2
  - id: q3
    text: Rate the rider
    type: rating
    validation:
      maxRating: 10
    order: 3
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImport(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.sqlite")
	file := writeFile(t, "survey.yaml", surveyYAML)

	out, err := run(t, "import", file, "--db-url", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported feedback (3 questions, version 1)")

	out, err = run(t, "import", file, "--db-url", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "version 2")

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()
	s, err := database.GetSurvey(context.Background(), db, "feedback")
	require.NoError(t, err)
	require.Len(t, s.Questions, 3)
	n, numeric := s.Questions[0].Type.Numeric()
	assert.True(t, numeric)
	assert.Zero(t, n)
	assert.Equal(t, "single-choice", s.Questions[1].Type.Symbol())
	assert.Equal(t, 10, *s.Questions[2].Validation.MaxRating)
}

func TestImportRejectsUnknownTypeUnlessLenient(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.sqlite")
	file := writeFile(t, "survey.yaml", strings.Replace(surveyYAML, "type: rating", "type: matrix", 1))

	_, err := run(t, "import", file, "--db-url", dbPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown question type")

	out, err := run(t, "import", file, "--db-url", dbPath, "--lenient")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported feedback")
}

func TestImportMissingFile(t *testing.T) {
	_, err := run(t, "import", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestToken(t *testing.T) {
	out, err := run(t, "token", "--token-secret", "s3cret", "--subject", "boss", "--role", "admin")
	require.NoError(t, err)

	raw := strings.TrimSpace(out)
	token, err := app.NewJWT("s3cret").Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "boss", token.Subject())
	roles, ok := token.Get("roles")
	require.True(t, ok)
	assert.Equal(t, "admin", roles)
}

func TestTokenNeedsSecretAndSubject(t *testing.T) {
	t.Setenv("CHOWMATE_TOKEN_SECRET", "")
	_, err := run(t, "token", "--subject", "boss")
	assert.Error(t, err)

	_, err = run(t, "token", "--token-secret", "s3cret")
	assert.Error(t, err)
}

func TestServeNeedsSecret(t *testing.T) {
	t.Setenv("CHOWMATE_TOKEN_SECRET", "")
	_, err := run(t, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token-secret")
}
