package testutil

import (
	"github.com/google/uuid"

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/valueobject"
)

// Fixed IDs for deterministic testing
var (
	TestFarmerID1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestFarmerID2 = uuid.MustParse("00000000-0000-0000-0000-000000000002")
)

// FarmOperationsRecord is a complete farm-operations record scoring 43.18.
func FarmOperationsRecord() map[string]valueobject.AttributeValue {
	return map[string]valueobject.AttributeValue{
		"income":           valueobject.Numeric(10000),
		"yield_efficiency": valueobject.Numeric(1000),
		"crop_management":  valueobject.Numeric(50),
		"record_keeping":   valueobject.Numeric(50),
		"farm_size":        valueobject.Numeric(5),
		"active_land":      valueobject.Numeric(5),
		"crop_type_score":  valueobject.Numeric(65),
		"irrigation_score": valueobject.Numeric(50),
		"farm_inputs":      valueobject.Numeric(50),
		"weather_risk":     valueobject.Numeric(50),
	}
}

// DemographicFinancialRecord is a complete demographic-financial record
// scoring 84.56.
func DemographicFinancialRecord() map[string]valueobject.AttributeValue {
	return map[string]valueobject.AttributeValue{
		"age":                          valueobject.Numeric(30),
		"marital_status":               valueobject.Categorical("Married"),
		"education_level":              valueobject.Categorical("Secondary School"),
		"farming_experience":           valueobject.Numeric(8),
		"sacco_membership":             valueobject.Categorical("Yes"),
		"annual_income":                valueobject.Numeric(600000),
		"loan_amount":                  valueobject.Numeric(150000),
		"savings_contributions":        valueobject.Numeric(30000),
		"repayment_history":            valueobject.Categorical("Good"),
		"sacco_contribution_frequency": valueobject.Categorical("Monthly"),
		"weather_risks":                valueobject.Categorical("Moderate"),
	}
}
