// Package dictionary holds the curated category suggestions per transaction type.
// Categories stay free text on records; this list only feeds clients.
package dictionary

import "github.com/tinoosan/records/internal/record"

type CategoryDef struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

var curated = map[record.Type][]CategoryDef{
	record.TypeDeposit: {
		{Code: "salary", Label: "Salary"},
		{Code: "interest", Label: "Interest"},
		{Code: "refund", Label: "Refund"},
		{Code: "other_income", Label: "Other Income"},
	},
	record.TypeWithdraw: {
		{Code: "groceries", Label: "Groceries"},
		{Code: "eating_out", Label: "Eating Out"},
		{Code: "rent", Label: "Rent"},
		{Code: "utilities", Label: "Utilities"},
		{Code: "transport", Label: "Transport"},
		{Code: "shopping", Label: "Shopping"},
		{Code: "general", Label: "General"},
	},
}

// CategoriesFor returns a copy of the curated list for t. Unknown types have none.
func CategoriesFor(t record.Type) []CategoryDef {
	return append([]CategoryDef{}, curated[t]...)
}
