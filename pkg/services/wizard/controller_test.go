package wizard

import (
	"context"
	"sync"
	"testing"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/catalog"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/calc"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/questionnaire"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/services/validate"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/store/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T) (Controller, session.Store) {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	registry, err := calc.DefaultRegistry(cat)
	require.NoError(t, err)
	store := session.NewMemoryStore()
	return NewController(cat, registry, validate.New(cat), store), store
}

// answerBaseline answers every top-level required question. The self-employed
// branch is open; its own required questions are answered too.
func answerBaseline(t *testing.T, c Controller, id string) {
	t.Helper()
	ctx := context.Background()
	for _, a := range []struct {
		question string
		value    any
	}{
		{"filing_status", "single"},
		{"w2_employment", false},
		{"selfEmployed", true},
		{"platform_income_over_threshold", false},
		{"business_start_date", "2023-02-01"},
		{"vehicle_for_work", false},
		{"home_office", false},
		{"sold_investments", false},
		{"rental_income", false},
		{"farm_income", false},
	} {
		_, err := c.SetAnswer(ctx, id, a.question, a.value)
		require.NoError(t, err)
	}
}

func validScheduleC() *domain.ScheduleCData {
	return &domain.ScheduleCData{
		Business: domain.BusinessProfile{
			Name:     "Acme Deliveries",
			Activity: "courier",
		},
		GrossReceipts: 1000,
	}
}

func TestCreateSession(t *testing.T) {
	ctx := context.Background()
	c, store := newTestController(t)

	s, err := c.CreateSession(ctx, 2024)
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 2024, s.TaxYear)
	assert.Equal(t, domain.StepLanding, s.Step)
	assert.Equal(t, "2025.1", s.CatalogVersion)

	// New sessions are persisted immediately.
	_, err = store.Get(ctx, s.ID)
	assert.NoError(t, err)
}

func TestGetSession_Unknown(t *testing.T) {
	c, _ := newTestController(t)
	_, err := c.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestNext_QuestionnaireGate(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	s, err := c.CreateSession(ctx, 2024)
	require.NoError(t, err)

	state, err := c.Next(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepQuestionnaire, state.Step)

	// Required questions unanswered: the gate refuses.
	_, err = c.Next(ctx, s.ID)
	var gate *GateError
	require.ErrorAs(t, err, &gate)
	assert.Equal(t, domain.StepQuestionnaire, gate.Step)

	answerBaseline(t, c, s.ID)
	state, err = c.Next(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepRequirements, state.Step)
}

func TestNext_SnapshotsRequirementsOnLeavingQuestionnaire(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	s, err := c.CreateSession(ctx, 2024)
	require.NoError(t, err)
	_, err = c.Next(ctx, s.ID)
	require.NoError(t, err)
	answerBaseline(t, c, s.ID)
	_, err = c.Next(ctx, s.ID)
	require.NoError(t, err)

	reqs, err := c.Requirements(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.DocumentType{domain.DocForm1099NEC, domain.DocScheduleC}, reqs.Snapshot)
	assert.True(t, reqs.Pending.Empty())
}

func TestRequirements_ChangedAnswersSurfaceAsPendingDelta(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	s, err := c.CreateSession(ctx, 2024)
	require.NoError(t, err)
	_, err = c.Next(ctx, s.ID)
	require.NoError(t, err)
	answerBaseline(t, c, s.ID)
	_, err = c.Next(ctx, s.ID)
	require.NoError(t, err)

	// Changing an answer after the snapshot does not rewrite the presented
	// list; the difference shows up as a pending delta.
	qstate, err := c.SetAnswer(ctx, s.ID, "sold_investments", true)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]domain.DocumentType{domain.DocScheduleD, domain.DocForm1099B},
		qstate.Pending.Added)

	// The delta gates forward progress until acknowledged.
	_, err = c.Next(ctx, s.ID)
	var gate *GateError
	require.ErrorAs(t, err, &gate)

	reqs, err := c.AcknowledgeRequirements(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, reqs.Pending.Empty())
	assert.Contains(t, reqs.Snapshot, domain.DocScheduleD)

	state, err := c.Next(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepUpload, state.Step)
}

func TestNext_UploadGate(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	s, err := c.CreateSession(ctx, 2024)
	require.NoError(t, err)
	_, err = c.Next(ctx, s.ID)
	require.NoError(t, err)
	answerBaseline(t, c, s.ID)
	_, err = c.Next(ctx, s.ID)
	require.NoError(t, err)
	_, err = c.Next(ctx, s.ID)
	require.NoError(t, err)

	// Source documents need a registered upload.
	_, err = c.Next(ctx, s.ID)
	var gate *GateError
	require.ErrorAs(t, err, &gate)
	assert.Contains(t, gate.Reason, "FORM_1099_NEC")
	require.NoError(t, c.RegisterUpload(ctx, s.ID, domain.DocForm1099NEC, "upload-1"))

	// SCHEDULE_C on the list means the schedule must be started and valid.
	_, err = c.Next(ctx, s.ID)
	require.ErrorAs(t, err, &gate)
	assert.Contains(t, gate.Reason, "has not been started")

	_, err = c.UpdateSchedule(ctx, s.ID, &domain.ScheduleCData{GrossReceipts: 1000})
	require.NoError(t, err)
	_, err = c.Next(ctx, s.ID)
	require.ErrorAs(t, err, &gate)
	assert.Contains(t, gate.Reason, "validation errors")

	_, err = c.UpdateSchedule(ctx, s.ID, validScheduleC())
	require.NoError(t, err)
	state, err := c.Next(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepReview, state.Step)
	assert.True(t, state.Aggregate.Finalized)
}

func TestRegisterUpload_Validation(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	s, err := c.CreateSession(ctx, 2024)
	require.NoError(t, err)
	_, err = c.Next(ctx, s.ID)
	require.NoError(t, err)
	answerBaseline(t, c, s.ID)
	_, err = c.Next(ctx, s.ID)
	require.NoError(t, err)

	assert.Error(t, c.RegisterUpload(ctx, s.ID, domain.DocForm1099NEC, ""))
	assert.Error(t, c.RegisterUpload(ctx, s.ID, domain.DocFormW2, "upload-1"))
	assert.NoError(t, c.RegisterUpload(ctx, s.ID, domain.DocForm1099NEC, "upload-1"))
}

func TestFinalized_RejectsMutations(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	s := advanceToReview(t, c)

	_, err := c.SetAnswer(ctx, s, "sold_investments", true)
	assert.ErrorIs(t, err, ErrFinalized)
	_, err = c.UpdateSchedule(ctx, s, validScheduleC())
	assert.ErrorIs(t, err, ErrFinalized)
	_, err = c.AcknowledgeRequirements(ctx, s)
	assert.ErrorIs(t, err, ErrFinalized)
	assert.ErrorIs(t, c.RegisterUpload(ctx, s, domain.DocForm1099NEC, "upload-2"), ErrFinalized)
}

func TestBack_ReopensWithoutDiscardingData(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	id := advanceToReview(t, c)

	state, err := c.Back(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StepUpload, state.Step)
	assert.False(t, state.Aggregate.Finalized)

	// Everything entered on the way in survives.
	s, err := c.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, true, s.Answers["selfEmployed"])
	require.NotNil(t, s.Schedules.C)
	assert.Equal(t, 1000.0, s.Schedules.C.GrossReceipts)
	assert.Equal(t, "upload-1", s.Documents[domain.DocForm1099NEC])

	// Editing works again after backing out of review.
	_, err = c.SetAnswer(ctx, id, "sold_investments", false)
	assert.NoError(t, err)
}

func TestBack_FromLandingStays(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	s, err := c.CreateSession(ctx, 2024)
	require.NoError(t, err)

	state, err := c.Back(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepLanding, state.Step)
}

func TestNext_CompleteIsTerminal(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	id := advanceToReview(t, c)

	state, err := c.Next(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StepComplete, state.Step)

	_, err = c.Next(ctx, id)
	var gate *GateError
	assert.ErrorAs(t, err, &gate)
}

func TestUpdateSchedule_AppliesSessionTaxYear(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	s, err := c.CreateSession(ctx, 2023)
	require.NoError(t, err)

	state, err := c.UpdateSchedule(ctx, s.ID, &domain.ScheduleCData{
		GrossReceipts: 10000,
		Vehicle: &domain.VehicleExpense{
			UsingStandardMileage: true,
			BusinessMiles:        1000,
		},
	})
	require.NoError(t, err)
	// 2023 standard mileage rate.
	assert.InDelta(t, 655.0, state.Totals.TotalExpenses, 0.001)
}

func TestTotals_InactiveSchedule(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	s, err := c.CreateSession(ctx, 2024)
	require.NoError(t, err)

	_, err = c.Totals(ctx, s.ID, domain.ScheduleD)
	assert.ErrorIs(t, err, ErrScheduleInactive)
	_, err = c.ValidateSection(ctx, s.ID, domain.ScheduleD, "short_term")
	assert.ErrorIs(t, err, ErrScheduleInactive)
}

func TestAggregate_RollsUpActiveSchedules(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	s, err := c.CreateSession(ctx, 2024)
	require.NoError(t, err)

	_, err = c.UpdateSchedule(ctx, s.ID, validScheduleC())
	require.NoError(t, err)
	_, err = c.UpdateSchedule(ctx, s.ID, &domain.ScheduleDData{
		LongTerm: []domain.CapitalTransaction{{Description: "ABC", Proceeds: 800, CostBasis: 300}},
	})
	require.NoError(t, err)

	agg, err := c.Aggregate(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, agg.BusinessIncome)
	assert.Equal(t, 500.0, agg.CapitalGainLoss)
	assert.Equal(t, 1500.0, agg.TotalIncome)
	assert.InDelta(t, 141.2955, agg.SelfEmploymentTax, 0.01)
	assert.InDelta(t, agg.SelfEmploymentTax/2, agg.Adjustments, 0.0001)
	assert.InDelta(t, agg.TotalIncome-agg.Adjustments, agg.AdjustedGrossIncome, 0.0001)
	assert.False(t, agg.Finalized)
}

func TestSaveAndReload_PreservesSessionState(t *testing.T) {
	ctx := context.Background()
	cat, err := catalog.Default()
	require.NoError(t, err)
	registry, err := calc.DefaultRegistry(cat)
	require.NoError(t, err)
	store := session.NewMemoryStore()

	c := NewController(cat, registry, validate.New(cat), store)
	s, err := c.CreateSession(ctx, 2024)
	require.NoError(t, err)
	_, err = c.SetAnswer(ctx, s.ID, "selfEmployed", true)
	require.NoError(t, err)
	_, err = c.UpdateSchedule(ctx, s.ID, validScheduleC())
	require.NoError(t, err)
	require.NoError(t, c.Save(ctx, s.ID))

	// A fresh controller over the same store sees identical derivations.
	reloaded := NewController(cat, registry, validate.New(cat), store)
	restored, err := reloaded.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t,
		questionnaire.New(cat, map[string]any{"selfEmployed": true}).RequiredDocuments(),
		questionnaire.New(cat, restored.Answers).RequiredDocuments())

	totals, err := reloaded.Totals(ctx, s.ID, domain.ScheduleC)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, totals.Net)
}

// Answer writes and visibility reads on one session must serialize; run with
// the race detector enabled.
func TestConcurrentAnswerAndScheduleAccess(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestController(t)
	s, err := c.CreateSession(ctx, 2024)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				switch (worker + i) % 4 {
				case 0:
					_, err := c.SetAnswer(ctx, s.ID, "selfEmployed", i%2 == 0)
					assert.NoError(t, err)
				case 1:
					_, err := c.VisibleQuestions(ctx, s.ID)
					assert.NoError(t, err)
				case 2:
					_, err := c.UpdateSchedule(ctx, s.ID, validScheduleC())
					assert.NoError(t, err)
				default:
					_, err := c.Aggregate(ctx, s.ID)
					assert.NoError(t, err)
				}
			}
		}(worker)
	}
	wg.Wait()
}

// advanceToReview drives a fresh session through the happy path and returns
// its id at the review step.
func advanceToReview(t *testing.T, c Controller) string {
	t.Helper()
	ctx := context.Background()

	s, err := c.CreateSession(ctx, 2024)
	require.NoError(t, err)
	_, err = c.Next(ctx, s.ID)
	require.NoError(t, err)
	answerBaseline(t, c, s.ID)
	_, err = c.Next(ctx, s.ID)
	require.NoError(t, err)
	_, err = c.Next(ctx, s.ID)
	require.NoError(t, err)
	_, err = c.UpdateSchedule(ctx, s.ID, validScheduleC())
	require.NoError(t, err)
	require.NoError(t, c.RegisterUpload(ctx, s.ID, domain.DocForm1099NEC, "upload-1"))
	state, err := c.Next(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StepReview, state.Step)
	return s.ID
}
