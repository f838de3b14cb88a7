package services

import "fleetops/internal/domain/models"

// TypeTotal is the count and sum of expenses of one type.
type TypeTotal struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

type ExpenseTypeSummary struct {
	Type  models.ExpenseType `json:"type"`
	Count int                `json:"count"`
	Total float64            `json:"total"`
}

// SumExpenseValues adds up expense values. An empty list sums to 0.
func SumExpenseValues(expenses []models.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Value
	}
	return total
}

// SumTripValues adds up tripValue, counting missing values as 0.
func SumTripValues(trips []models.Trip) float64 {
	var total float64
	for _, t := range trips {
		total += t.Value()
	}
	return total
}

// SumTripExpenses adds up the nested expenses of every trip.
func SumTripExpenses(trips []models.Trip) float64 {
	var total float64
	for _, t := range trips {
		total += SumExpenseValues(t.Expenses)
	}
	return total
}

// ExpensesByType groups expenses by type. Types without expenses are absent.
func ExpensesByType(expenses []models.Expense) map[models.ExpenseType]TypeTotal {
	out := map[models.ExpenseType]TypeTotal{}
	for _, e := range expenses {
		tt := out[e.Type]
		tt.Count++
		tt.Total += e.Value
		out[e.Type] = tt
	}
	return out
}

// ExpenseTypeBreakdown is ExpensesByType as a slice in enum order.
// Unknown types found in the data follow the known ones.
func ExpenseTypeBreakdown(expenses []models.Expense) []ExpenseTypeSummary {
	byType := ExpensesByType(expenses)
	out := make([]ExpenseTypeSummary, 0, len(byType))
	for _, typ := range models.ExpenseTypes {
		if tt, ok := byType[typ]; ok {
			out = append(out, ExpenseTypeSummary{Type: typ, Count: tt.Count, Total: tt.Total})
			delete(byType, typ)
		}
	}
	for _, e := range expenses {
		if tt, ok := byType[e.Type]; ok {
			out = append(out, ExpenseTypeSummary{Type: e.Type, Count: tt.Count, Total: tt.Total})
			delete(byType, e.Type)
		}
	}
	return out
}
