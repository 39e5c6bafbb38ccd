package catalog

import (
	"testing"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "2025.1", cat.Version())
	assert.NotEmpty(t, cat.Questions())

	q, err := cat.Question("selfEmployed")
	require.NoError(t, err)
	assert.Equal(t, domain.AnswerTypeBoolean, q.Type)
	assert.True(t, q.Required)
	assert.Equal(t, []domain.DocumentType{domain.DocScheduleC, domain.DocForm1099NEC}, q.Documents)
}

func TestQuestion_UnknownID(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	_, err = cat.Question("does_not_exist")
	assert.ErrorIs(t, err, ErrUnknownQuestion)
}

func TestValidationRules_Lookup(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	rs, err := cat.ValidationRules(domain.ScheduleC, "income")
	require.NoError(t, err)
	assert.Equal(t, domain.ScheduleC, rs.Schedule)
	assert.Equal(t, "income", rs.Section)
	require.Len(t, rs.Cross, 1)
	assert.Equal(t, "returns", rs.Cross[0].Left)
	assert.Equal(t, domain.SeverityWarning, rs.Cross[0].Severity)

	_, err = cat.ValidationRules(domain.ScheduleC, "nope")
	assert.ErrorIs(t, err, ErrUnknownRuleSet)
}

func TestSections_PerSchedule(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]string{"business_info", "income", "cost_of_goods", "expenses", "vehicle", "home_office"},
		cat.Sections(domain.ScheduleC))
	assert.ElementsMatch(t, []string{"short_term", "long_term"}, cat.Sections(domain.ScheduleD))
}

func TestConstants_MileageRateFallback(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 0.655, cat.Constants(2023).StandardMileageRate)
	assert.Equal(t, 0.67, cat.Constants(2024).StandardMileageRate)

	// A year without a published rate falls back to the latest catalog year.
	assert.Equal(t, 0.70, cat.Constants(2030).StandardMileageRate)

	consts := cat.Constants(2024)
	assert.Equal(t, 0.9235, consts.SENetEarningsFactor)
	assert.Equal(t, 0.153, consts.SETaxRate)
}

func TestNew_DuplicateQuestionID(t *testing.T) {
	questions := []byte(`
version: "test"
questions:
  - id: a
    type: boolean
  - id: a
    type: boolean
`)
	_, err := New(questions, []byte("rules: []"), constantsYAML)
	assert.ErrorContains(t, err, "duplicate question id")
}

func TestNew_DanglingConditionReference(t *testing.T) {
	questions := []byte(`
version: "test"
questions:
  - id: a
    type: boolean
    visible_when:
      question: missing
      operator: equals
      value: true
`)
	_, err := New(questions, []byte("rules: []"), constantsYAML)
	assert.ErrorContains(t, err, "references unknown question")
}

func TestNew_RequiresMileageRates(t *testing.T) {
	_, err := New([]byte("version: \"test\"\nquestions: []"), []byte("rules: []"), []byte(""))
	assert.ErrorContains(t, err, "no standard mileage rates")
}
