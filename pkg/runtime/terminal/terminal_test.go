package terminal

import (
	"bytes"
	"context"
	"testing"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/adapters"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/catalog"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/calc"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/validate"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/store/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCLI(t *testing.T) (*CLI, session.Store, *bytes.Buffer) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	registry, err := calc.DefaultRegistry(cat)
	require.NoError(t, err)
	store := session.NewMemoryStore()

	var out bytes.Buffer
	cli := NewCLI(Options{
		Catalog:   cat,
		Registry:  registry,
		Validator: validate.New(cat),
		Store:     store,
		Output:    &out,
	})
	return cli, store, &out
}

func saveSession(t *testing.T, store session.Store, s domain.Session) {
	t.Helper()
	require.NoError(t, store.Put(context.Background(), adapters.MapDomainSessionToSnapshot(s)))
}

func run(t *testing.T, cli *CLI, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cli.rootCmd.SetOut(&out)
	cli.rootCmd.SetErr(&out)
	cli.rootCmd.SetArgs(args)
	err := cli.rootCmd.Execute()
	return out.String(), err
}

func TestSessionsCmd_ListsSavedSessions(t *testing.T) {
	cli, store, _ := newTestCLI(t)
	saveSession(t, store, domain.Session{ID: "alpha", TaxYear: 2024, Step: domain.StepLanding})
	saveSession(t, store, domain.Session{ID: "beta", TaxYear: 2024, Step: domain.StepLanding})

	out, err := run(t, cli, "sessions")
	require.NoError(t, err)
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "beta")
}

func TestValidateCmd_ReportsFindings(t *testing.T) {
	cli, store, _ := newTestCLI(t)
	saveSession(t, store, domain.Session{
		ID:      "broken",
		TaxYear: 2024,
		Step:    domain.StepUpload,
		Schedules: domain.Schedules{
			C: &domain.ScheduleCData{TaxYear: 2024, GrossReceipts: 1000},
		},
	})

	out, err := run(t, cli, "validate", "broken")
	require.NoError(t, err)
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "business.name")
}

func TestValidateCmd_CleanSession(t *testing.T) {
	cli, store, _ := newTestCLI(t)
	saveSession(t, store, domain.Session{
		ID:      "clean",
		TaxYear: 2024,
		Step:    domain.StepUpload,
		Schedules: domain.Schedules{
			C: &domain.ScheduleCData{
				TaxYear: 2024,
				Business: domain.BusinessProfile{
					Name:     "Acme Deliveries",
					Activity: "courier",
				},
				GrossReceipts: 1000,
			},
		},
	})

	out, err := run(t, cli, "validate", "clean")
	require.NoError(t, err)
	assert.Contains(t, out, "all sections valid")
}

func TestReportCmd_RendersSummary(t *testing.T) {
	cli, store, out := newTestCLI(t)
	saveSession(t, store, domain.Session{
		ID:      "summary",
		TaxYear: 2024,
		Step:    domain.StepReview,
		Answers: map[string]any{"selfEmployed": true},
		Schedules: domain.Schedules{
			C: &domain.ScheduleCData{
				TaxYear: 2024,
				Business: domain.BusinessProfile{
					Name:     "Acme Deliveries",
					Activity: "courier",
				},
				GrossReceipts: 1000,
			},
		},
	})

	_, err := run(t, cli, "report", "summary")
	require.NoError(t, err)

	rendered := out.String()
	assert.Contains(t, rendered, "Return summary for session summary (tax year 2024)")
	assert.Contains(t, rendered, "SCHEDULE_C")
	assert.Contains(t, rendered, "=== schedule_c ===")
	assert.Contains(t, rendered, "Net:            1000.00")
	assert.Contains(t, rendered, "Self-employment tax:   141.30")
}

func TestReportCmd_UnknownSession(t *testing.T) {
	cli, _, _ := newTestCLI(t)
	_, err := run(t, cli, "report", "nope")
	assert.ErrorIs(t, err, session.ErrNotFound)
}
