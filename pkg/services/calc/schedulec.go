package calc

import (
	"fmt"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
)

type scheduleC struct {
	constants ConstantsProvider
}

// NewScheduleC builds the Schedule C (business income) calculator.
func NewScheduleC(constants ConstantsProvider) Calculator {
	return &scheduleC{constants: constants}
}

func (c *scheduleC) ScheduleType() domain.ScheduleType { return domain.ScheduleC }

func (c *scheduleC) Calculate(data domain.ScheduleData) domain.ScheduleTotals {
	d, ok := data.(*domain.ScheduleCData)
	if !ok {
		panic(fmt.Sprintf("schedule C calculator received %T", data))
	}
	consts := c.constants.Constants(d.TaxYear)

	gross := d.GrossReceipts - d.Returns + d.OtherIncome - sumItems(d.CostOfGoods)
	expenses := sumItems(d.Expenses) + vehicleContribution(d.Vehicle, consts) + homeOfficeContribution(d.HomeOffice)
	net := gross - expenses
	base, tax := seTax(net, consts)

	return domain.ScheduleTotals{
		Schedule:      domain.ScheduleC,
		GrossIncome:   gross,
		TotalExpenses: expenses,
		Net:           net,
		SETaxBase:     base,
		SETax:         tax,
	}
}

func vehicleContribution(v *domain.VehicleExpense, consts domain.TaxConstants) float64 {
	if v == nil {
		return 0
	}
	if v.UsingStandardMileage {
		return v.BusinessMiles * consts.StandardMileageRate
	}
	return sumItems(v.ActualExpenses) * (v.BusinessUsePercent / 100)
}

// homeOfficeContribution allocates home expenses by area. A zero total area
// is treated as 0% rather than dividing by zero.
func homeOfficeContribution(h *domain.HomeOffice) float64 {
	if h == nil || h.TotalSquareFeet <= 0 {
		return 0
	}
	return sumItems(h.Expenses) * (h.BusinessSquareFeet / h.TotalSquareFeet)
}
