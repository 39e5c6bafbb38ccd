package validate

import (
	"fmt"

	"github.com/joshpickett/EdgeTaxAI-sub001/pkg/models/domain"
)

// fieldRecord is one validatable record: field path → string or float64.
type fieldRecord map[string]any

// sectionRecords flattens the section of a schedule into records the rule
// engine can address by field name. Collection sections (line items,
// transactions, properties) return one record per element and report
// indexed=true so messages carry element positions.
func sectionRecords(data domain.ScheduleData, section string) ([]fieldRecord, bool, error) {
	switch d := data.(type) {
	case *domain.ScheduleCData:
		return scheduleCRecords(d, section)
	case *domain.ScheduleDData:
		return scheduleDRecords(d, section)
	case *domain.ScheduleEData:
		return scheduleERecords(d, section)
	case *domain.ScheduleFData:
		return scheduleFRecords(d, section)
	default:
		return nil, false, fmt.Errorf("unsupported schedule data type %T", data)
	}
}

func scheduleCRecords(d *domain.ScheduleCData, section string) ([]fieldRecord, bool, error) {
	switch section {
	case "business_info":
		return []fieldRecord{{
			"business.name":      d.Business.Name,
			"business.owner_ssn": d.Business.OwnerSSN,
			"business.ein":       d.Business.EIN,
			"business.activity":  d.Business.Activity,
		}}, false, nil
	case "income":
		return []fieldRecord{{
			"gross_receipts": d.GrossReceipts,
			"returns":        d.Returns,
			"other_income":   d.OtherIncome,
		}}, false, nil
	case "cost_of_goods":
		return lineItemRecords(d.CostOfGoods), true, nil
	case "expenses":
		return lineItemRecords(d.Expenses), true, nil
	case "vehicle":
		if d.Vehicle == nil {
			return nil, false, nil
		}
		return []fieldRecord{{
			"business_miles":       d.Vehicle.BusinessMiles,
			"business_use_percent": d.Vehicle.BusinessUsePercent,
		}}, false, nil
	case "home_office":
		if d.HomeOffice == nil {
			return nil, false, nil
		}
		return []fieldRecord{{
			"business_square_feet": d.HomeOffice.BusinessSquareFeet,
			"total_square_feet":    d.HomeOffice.TotalSquareFeet,
		}}, false, nil
	default:
		return nil, false, fmt.Errorf("schedule C has no section %q", section)
	}
}

func scheduleDRecords(d *domain.ScheduleDData, section string) ([]fieldRecord, bool, error) {
	var transactions []domain.CapitalTransaction
	switch section {
	case "short_term":
		transactions = d.ShortTerm
	case "long_term":
		transactions = d.LongTerm
	default:
		return nil, false, fmt.Errorf("schedule D has no section %q", section)
	}

	records := make([]fieldRecord, 0, len(transactions))
	for _, t := range transactions {
		records = append(records, fieldRecord{
			"description": t.Description,
			"proceeds":    t.Proceeds,
			"cost_basis":  t.CostBasis,
		})
	}
	return records, true, nil
}

func scheduleERecords(d *domain.ScheduleEData, section string) ([]fieldRecord, bool, error) {
	switch section {
	case "properties":
		records := make([]fieldRecord, 0, len(d.Properties))
		for _, p := range d.Properties {
			records = append(records, fieldRecord{
				"address":       p.Address,
				"property_type": p.PropertyType,
			})
		}
		return records, true, nil
	case "income":
		var items []domain.LineItem
		for _, p := range d.Properties {
			items = append(items, p.Income...)
		}
		return lineItemRecords(items), true, nil
	case "expenses":
		var items []domain.LineItem
		for _, p := range d.Properties {
			items = append(items, p.Expenses...)
		}
		return lineItemRecords(items), true, nil
	default:
		return nil, false, fmt.Errorf("schedule E has no section %q", section)
	}
}

func scheduleFRecords(d *domain.ScheduleFData, section string) ([]fieldRecord, bool, error) {
	switch section {
	case "profile":
		return []fieldRecord{{
			"accounting_method": string(d.AccountingMethod),
		}}, false, nil
	case "income":
		return []fieldRecord{{
			"cooperative_distributions": d.CooperativeDistributions,
			"agricultural_payments":     d.AgriculturalPayments,
			"commodity_payments":        d.CommodityPayments,
			"crop_insurance":            d.CropInsurance,
			"beginning_inventory":       d.BeginningInventory,
			"ending_inventory":          d.EndingInventory,
		}}, false, nil
	case "income_lines":
		return lineItemRecords(d.Income), true, nil
	case "expenses":
		return lineItemRecords(d.Expenses), true, nil
	default:
		return nil, false, fmt.Errorf("schedule F has no section %q", section)
	}
}

func lineItemRecords(items []domain.LineItem) []fieldRecord {
	records := make([]fieldRecord, 0, len(items))
	for _, item := range items {
		records = append(records, fieldRecord{
			"category":    item.Category,
			"description": item.Description,
			"amount":      item.Amount,
		})
	}
	return records
}
