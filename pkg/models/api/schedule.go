package api

// Schedule payloads accepted by the schedule upsert endpoint. Field names
// follow the section/field ids used by the validation rule tables.

type LineItem struct {
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
}

type BusinessProfile struct {
	Name     string `json:"name"`
	OwnerSSN string `json:"owner_ssn,omitempty"`
	EIN      string `json:"ein,omitempty"`
	Activity string `json:"activity"`
	Address  string `json:"address,omitempty"`
}

type VehicleExpense struct {
	UsingStandardMileage bool       `json:"using_standard_mileage"`
	BusinessMiles        float64    `json:"business_miles"`
	ActualExpenses       []LineItem `json:"actual_expenses,omitempty"`
	BusinessUsePercent   float64    `json:"business_use_percent"`
}

type HomeOffice struct {
	BusinessSquareFeet float64    `json:"business_square_feet"`
	TotalSquareFeet    float64    `json:"total_square_feet"`
	Expenses           []LineItem `json:"expenses,omitempty"`
}

type ScheduleC struct {
	TaxYear       int             `json:"tax_year,omitempty"`
	Business      BusinessProfile `json:"business"`
	GrossReceipts float64         `json:"gross_receipts"`
	Returns       float64         `json:"returns"`
	OtherIncome   float64         `json:"other_income"`
	CostOfGoods   []LineItem      `json:"cost_of_goods,omitempty"`
	Expenses      []LineItem      `json:"expenses,omitempty"`
	Vehicle       *VehicleExpense `json:"vehicle,omitempty"`
	HomeOffice    *HomeOffice     `json:"home_office,omitempty"`
}

type CapitalTransaction struct {
	Description  string  `json:"description"`
	DateAcquired string  `json:"date_acquired,omitempty"`
	DateSold     string  `json:"date_sold,omitempty"`
	Proceeds     float64 `json:"proceeds"`
	CostBasis    float64 `json:"cost_basis"`
}

type ScheduleD struct {
	TaxYear   int                  `json:"tax_year,omitempty"`
	ShortTerm []CapitalTransaction `json:"short_term,omitempty"`
	LongTerm  []CapitalTransaction `json:"long_term,omitempty"`
}

type RentalProperty struct {
	Address      string     `json:"address"`
	PropertyType string     `json:"property_type"`
	Income       []LineItem `json:"income,omitempty"`
	Expenses     []LineItem `json:"expenses,omitempty"`
}

type ScheduleE struct {
	TaxYear    int              `json:"tax_year,omitempty"`
	Properties []RentalProperty `json:"properties,omitempty"`
}

type ScheduleF struct {
	TaxYear                  int        `json:"tax_year,omitempty"`
	AccountingMethod         string     `json:"accounting_method"`
	Income                   []LineItem `json:"income,omitempty"`
	CooperativeDistributions float64    `json:"cooperative_distributions"`
	AgriculturalPayments     float64    `json:"agricultural_payments"`
	CommodityPayments        float64    `json:"commodity_payments"`
	CropInsurance            float64    `json:"crop_insurance"`
	BeginningInventory       float64    `json:"beginning_inventory"`
	EndingInventory          float64    `json:"ending_inventory"`
	Expenses                 []LineItem `json:"expenses,omitempty"`
}

type CreateSessionRequest struct {
	TaxYear int `json:"tax_year"`
}

type AnswerRequest struct {
	Value any `json:"value"`
}

type UploadRequest struct {
	UploadID string `json:"upload_id"`
}
