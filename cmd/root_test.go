package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("PACKLIST_STORAGE_PATH", filepath.Join(t.TempDir(), "packlist.db"))
	t.Setenv("PACKLIST_PLACES_FILE", filepath.Join("..", "data", "places.json"))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(bytes.NewBufferString(""))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRulesCommand(t *testing.T) {
	out, err := execute(t, "rules")
	require.NoError(t, err)

	assert.Contains(t, out, "insulated parka")
	assert.Contains(t, out, "Rainy")
	assert.NotContains(t, out, "sunglasses")
}

func TestRulesCommandWithRuleFile(t *testing.T) {
	out, err := execute(t, "rules", "--rules", filepath.Join("..", "data", "rules.example.yaml"))
	require.NoError(t, err)

	assert.Contains(t, out, "sunglasses")
	assert.Contains(t, out, "light jacket")
}

func TestHistoryEmpty(t *testing.T) {
	out, err := execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved plans yet.")
}

func TestPlanRejectsInvalidDuration(t *testing.T) {
	_, err := execute(t, "plan", "--name", "Ada", "--destination", "Yellowknife", "--days", "17")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duration must be between 1 and 16 days")
}

func TestPlanIncompleteInput(t *testing.T) {
	_, err := execute(t, "plan", "--destination", "Yellowknife", "--days", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trip details incomplete")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "rules", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}
