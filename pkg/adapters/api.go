package adapters

import (
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/api"
	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
)

func MapDomainSessionToAPI(s domain.Session) api.Session {
	return api.Session{
		ID:             s.ID,
		TaxYear:        s.TaxYear,
		CatalogVersion: s.CatalogVersion,
		Step:           string(s.Step),
	}
}

func MapDomainQuestionToAPI(q domain.QuestionDefinition) api.Question {
	out := api.Question{
		ID:       q.ID,
		Prompt:   q.Prompt,
		Type:     string(q.Type),
		Required: q.Required,
		Options:  q.Options,
	}
	for _, d := range q.Documents {
		out.Documents = append(out.Documents, string(d))
	}
	return out
}

func MapQuestionnaireStateToAPI(s domain.QuestionnaireState) api.QuestionnaireState {
	out := api.QuestionnaireState{
		RequiredDocuments: documentsToStrings(s.RequiredDocuments),
		StepComplete:      s.StepComplete,
		Pending:           deltaToAPI(s.Pending),
	}
	for _, q := range s.Visible {
		out.Visible = append(out.Visible, MapDomainQuestionToAPI(q))
	}
	return out
}

func MapRequirementsStateToAPI(s domain.RequirementsState) api.RequirementsState {
	return api.RequirementsState{
		Snapshot: documentsToStrings(s.Snapshot),
		Current:  documentsToStrings(s.Current),
		Pending:  deltaToAPI(s.Pending),
	}
}

func MapValidationResultToAPI(r domain.ValidationResult) api.ValidationResult {
	out := api.ValidationResult{
		Schedule: string(r.Schedule),
		Section:  r.Section,
		IsValid:  r.IsValid,
	}
	for _, e := range r.Errors {
		out.Errors = append(out.Errors, api.FieldMessage{Field: e.Field, Message: e.Message})
	}
	for _, w := range r.Warnings {
		out.Warnings = append(out.Warnings, api.FieldMessage{Field: w.Field, Message: w.Message})
	}
	return out
}

func MapScheduleTotalsToAPI(t domain.ScheduleTotals) api.ScheduleTotals {
	out := api.ScheduleTotals{
		Schedule:      string(t.Schedule),
		GrossIncome:   t.GrossIncome,
		TotalExpenses: t.TotalExpenses,
		Net:           t.Net,
		SETaxBase:     t.SETaxBase,
		SETax:         t.SETax,
	}
	if t.ShortTerm != nil {
		out.ShortTerm = &api.CapitalTotals{
			Proceeds:  t.ShortTerm.Proceeds,
			CostBasis: t.ShortTerm.CostBasis,
			GainLoss:  t.ShortTerm.GainLoss,
		}
	}
	if t.LongTerm != nil {
		out.LongTerm = &api.CapitalTotals{
			Proceeds:  t.LongTerm.Proceeds,
			CostBasis: t.LongTerm.CostBasis,
			GainLoss:  t.LongTerm.GainLoss,
		}
	}
	for _, p := range t.Properties {
		out.Properties = append(out.Properties, api.PropertyTotals{
			Address:   p.Address,
			Income:    p.Income,
			Expenses:  p.Expenses,
			NetIncome: p.NetIncome,
		})
	}
	return out
}

func MapAggregateToAPI(a domain.Form1040Aggregate) api.Form1040 {
	return api.Form1040{
		TaxYear:             a.TaxYear,
		BusinessIncome:      a.BusinessIncome,
		CapitalGainLoss:     a.CapitalGainLoss,
		RentalIncome:        a.RentalIncome,
		FarmIncome:          a.FarmIncome,
		TotalIncome:         a.TotalIncome,
		SelfEmploymentTax:   a.SelfEmploymentTax,
		Adjustments:         a.Adjustments,
		AdjustedGrossIncome: a.AdjustedGrossIncome,
		Finalized:           a.Finalized,
	}
}

func MapScheduleStateToAPI(s domain.ScheduleState) api.ScheduleState {
	out := api.ScheduleState{
		Totals:    MapScheduleTotalsToAPI(s.Totals),
		Aggregate: MapAggregateToAPI(s.Aggregate),
	}
	for _, r := range s.Validation {
		out.Validation = append(out.Validation, MapValidationResultToAPI(r))
	}
	return out
}

func MapStepStateToAPI(s domain.StepState) api.StepState {
	return api.StepState{
		Step:         string(s.Step),
		StepComplete: s.StepComplete,
		Aggregate:    MapAggregateToAPI(s.Aggregate),
	}
}

func MapAPIScheduleCToDomain(in api.ScheduleC) *domain.ScheduleCData {
	out := &domain.ScheduleCData{
		TaxYear: in.TaxYear,
		Business: domain.BusinessProfile{
			Name:     in.Business.Name,
			OwnerSSN: in.Business.OwnerSSN,
			EIN:      in.Business.EIN,
			Activity: in.Business.Activity,
			Address:  in.Business.Address,
		},
		GrossReceipts: in.GrossReceipts,
		Returns:       in.Returns,
		OtherIncome:   in.OtherIncome,
		CostOfGoods:   mapAPILineItems(in.CostOfGoods),
		Expenses:      mapAPILineItems(in.Expenses),
	}
	if in.Vehicle != nil {
		out.Vehicle = &domain.VehicleExpense{
			UsingStandardMileage: in.Vehicle.UsingStandardMileage,
			BusinessMiles:        in.Vehicle.BusinessMiles,
			ActualExpenses:       mapAPILineItems(in.Vehicle.ActualExpenses),
			BusinessUsePercent:   in.Vehicle.BusinessUsePercent,
		}
	}
	if in.HomeOffice != nil {
		out.HomeOffice = &domain.HomeOffice{
			BusinessSquareFeet: in.HomeOffice.BusinessSquareFeet,
			TotalSquareFeet:    in.HomeOffice.TotalSquareFeet,
			Expenses:           mapAPILineItems(in.HomeOffice.Expenses),
		}
	}
	return out
}

func MapAPIScheduleDToDomain(in api.ScheduleD) *domain.ScheduleDData {
	return &domain.ScheduleDData{
		TaxYear:   in.TaxYear,
		ShortTerm: mapAPITransactions(in.ShortTerm),
		LongTerm:  mapAPITransactions(in.LongTerm),
	}
}

func MapAPIScheduleEToDomain(in api.ScheduleE) *domain.ScheduleEData {
	out := &domain.ScheduleEData{TaxYear: in.TaxYear}
	for _, p := range in.Properties {
		out.Properties = append(out.Properties, domain.RentalProperty{
			Address:      p.Address,
			PropertyType: p.PropertyType,
			Income:       mapAPILineItems(p.Income),
			Expenses:     mapAPILineItems(p.Expenses),
		})
	}
	return out
}

func MapAPIScheduleFToDomain(in api.ScheduleF) *domain.ScheduleFData {
	return &domain.ScheduleFData{
		TaxYear:                  in.TaxYear,
		AccountingMethod:         domain.AccountingMethod(in.AccountingMethod),
		Income:                   mapAPILineItems(in.Income),
		CooperativeDistributions: in.CooperativeDistributions,
		AgriculturalPayments:     in.AgriculturalPayments,
		CommodityPayments:        in.CommodityPayments,
		CropInsurance:            in.CropInsurance,
		BeginningInventory:       in.BeginningInventory,
		EndingInventory:          in.EndingInventory,
		Expenses:                 mapAPILineItems(in.Expenses),
	}
}

func mapAPILineItems(items []api.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		out = append(out, domain.LineItem{
			Category:    item.Category,
			Description: item.Description,
			Amount:      item.Amount,
		})
	}
	return out
}

func mapAPITransactions(transactions []api.CapitalTransaction) []domain.CapitalTransaction {
	out := make([]domain.CapitalTransaction, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, domain.CapitalTransaction{
			Description:  t.Description,
			DateAcquired: t.DateAcquired,
			DateSold:     t.DateSold,
			Proceeds:     t.Proceeds,
			CostBasis:    t.CostBasis,
		})
	}
	return out
}

func documentsToStrings(docs []domain.DocumentType) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, string(d))
	}
	return out
}

func deltaToAPI(d domain.RequirementsDelta) *api.RequirementsDelta {
	if d.Empty() {
		return nil
	}
	out := &api.RequirementsDelta{}
	for _, doc := range d.Added {
		out.Added = append(out.Added, string(doc))
	}
	for _, doc := range d.Removed {
		out.Removed = append(out.Removed, string(doc))
	}
	return out
}
