package validate

import (
	"testing"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/catalog"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return New(cat)
}

func messagesByField(messages []domain.FieldMessage) map[string]string {
	out := make(map[string]string, len(messages))
	for _, m := range messages {
		out[m.Field] = m.Message
	}
	return out
}

func TestValidateSection_RequiredFields(t *testing.T) {
	v := newValidator(t)

	result, err := v.ValidateSection(domain.ScheduleC, "business_info", &domain.ScheduleCData{})
	require.NoError(t, err)

	assert.False(t, result.IsValid)
	errors := messagesByField(result.Errors)
	assert.Equal(t, "required", errors["business.name"])
	assert.Equal(t, "required", errors["business.activity"])
	// Optional identifiers are only checked when present.
	assert.NotContains(t, errors, "business.owner_ssn")
	assert.NotContains(t, errors, "business.ein")
}

func TestValidateSection_IdentifierPatterns(t *testing.T) {
	v := newValidator(t)

	data := &domain.ScheduleCData{
		Business: domain.BusinessProfile{
			Name:     "Acme Deliveries",
			Activity: "courier",
			OwnerSSN: "123-45-678",
			EIN:      "123456789",
		},
	}
	result, err := v.ValidateSection(domain.ScheduleC, "business_info", data)
	require.NoError(t, err)
	errors := messagesByField(result.Errors)
	assert.Contains(t, errors, "business.owner_ssn")
	assert.Contains(t, errors, "business.ein")

	data.Business.OwnerSSN = "123-45-6789"
	data.Business.EIN = "12-3456789"
	result, err = v.ValidateSection(domain.ScheduleC, "business_info", data)
	require.NoError(t, err)
	assert.True(t, result.IsValid)
}

func TestValidateSection_NegativeAmountsRejected(t *testing.T) {
	v := newValidator(t)

	result, err := v.ValidateSection(domain.ScheduleC, "income", &domain.ScheduleCData{
		GrossReceipts: -10,
	})
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Contains(t, messagesByField(result.Errors), "gross_receipts")
}

func TestValidateSection_ReturnsExceedingReceiptsIsAWarning(t *testing.T) {
	v := newValidator(t)

	result, err := v.ValidateSection(domain.ScheduleC, "income", &domain.ScheduleCData{
		GrossReceipts: 100,
		Returns:       250,
	})
	require.NoError(t, err)

	// A warning never blocks the section.
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	warnings := messagesByField(result.Warnings)
	assert.Equal(t, "returns and allowances exceed gross receipts", warnings["returns"])
}

func TestValidateSection_ErrorsWinOverWarningsPerField(t *testing.T) {
	v := newValidator(t)

	// returns fails its range rule and would also trip the cross-field
	// warning; only the error survives.
	result, err := v.ValidateSection(domain.ScheduleC, "income", &domain.ScheduleCData{
		GrossReceipts: -10,
		Returns:       -5,
	})
	require.NoError(t, err)

	assert.Contains(t, messagesByField(result.Errors), "returns")
	assert.NotContains(t, messagesByField(result.Warnings), "returns")
}

func TestValidateSection_HomeOfficeCrossRule(t *testing.T) {
	v := newValidator(t)

	data := &domain.ScheduleCData{
		HomeOffice: &domain.HomeOffice{
			BusinessSquareFeet: 200,
			TotalSquareFeet:    100,
		},
	}
	result, err := v.ValidateSection(domain.ScheduleC, "home_office", data)
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	errors := messagesByField(result.Errors)
	assert.Equal(t, "business area cannot exceed the home's total area", errors["business_square_feet"])

	data.HomeOffice.TotalSquareFeet = 1000
	result, err = v.ValidateSection(domain.ScheduleC, "home_office", data)
	require.NoError(t, err)
	assert.True(t, result.IsValid)
}

func TestValidateSection_AbsentOptionalSubsectionIsValid(t *testing.T) {
	v := newValidator(t)

	result, err := v.ValidateSection(domain.ScheduleC, "home_office", &domain.ScheduleCData{})
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidateSection_CollectionFieldsAreIndexed(t *testing.T) {
	v := newValidator(t)

	result, err := v.ValidateSection(domain.ScheduleC, "expenses", &domain.ScheduleCData{
		Expenses: []domain.LineItem{
			{Category: "supplies", Amount: 10},
			{Category: "", Amount: -3},
		},
	})
	require.NoError(t, err)

	errors := messagesByField(result.Errors)
	assert.Contains(t, errors, "expenses[1].category")
	assert.Contains(t, errors, "expenses[1].amount")
	assert.NotContains(t, errors, "expenses[0].category")
}

func TestValidateSection_ScheduleFAccountingMethod(t *testing.T) {
	v := newValidator(t)

	result, err := v.ValidateSection(domain.ScheduleF, "profile", &domain.ScheduleFData{
		AccountingMethod: "mixed",
	})
	require.NoError(t, err)
	assert.False(t, result.IsValid)

	result, err = v.ValidateSection(domain.ScheduleF, "profile", &domain.ScheduleFData{
		AccountingMethod: domain.MethodAccrual,
	})
	require.NoError(t, err)
	assert.True(t, result.IsValid)
}

func TestValidateSection_ScheduleMismatchIsAnError(t *testing.T) {
	v := newValidator(t)

	_, err := v.ValidateSection(domain.ScheduleC, "income", &domain.ScheduleDData{})
	assert.Error(t, err)
}

func TestValidateSection_UnknownSection(t *testing.T) {
	v := newValidator(t)

	_, err := v.ValidateSection(domain.ScheduleC, "nonexistent", &domain.ScheduleCData{})
	assert.Error(t, err)
}

func TestValidateSchedule_RunsAllSectionsInOrder(t *testing.T) {
	v := newValidator(t)

	results, err := v.ValidateSchedule(&domain.ScheduleDData{
		ShortTerm: []domain.CapitalTransaction{{Description: "", Proceeds: 100}},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "long_term", results[0].Section)
	assert.Equal(t, "short_term", results[1].Section)
	assert.True(t, results[0].IsValid)
	assert.False(t, results[1].IsValid)
}
