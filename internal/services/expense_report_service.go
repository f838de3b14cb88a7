package services

import (
	"context"
	"fmt"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"
)

type ExpenseReport struct {
	Period         Period               `json:"period"`
	Type           models.ExpenseType   `json:"type,omitempty"`
	Count          int                  `json:"count"`
	TotalValue     float64              `json:"totalValue"`
	ExpensesByType []ExpenseTypeSummary `json:"expensesByType"`
	Expenses       []models.Expense     `json:"expenses"`
}

// BuildExpenseReport lists expenses dated inside f.Range, optionally of one type.
func (s ReportsService) BuildExpenseReport(ctx context.Context, f repositories.ExpenseFilter) (ExpenseReport, error) {
	expenses, err := s.Store.FindExpenses(ctx, f)
	if err != nil {
		return ExpenseReport{}, domain.WrapStore("fetch expenses", err)
	}

	utils.LogEvent(s.RequestID, "reports", "expenses", fmt.Sprintf("type=%s count=%d", f.Type, len(expenses)))
	return ExpenseReport{
		Period:         periodOf(f.Range),
		Type:           f.Type,
		Count:          len(expenses),
		TotalValue:     SumExpenseValues(expenses),
		ExpensesByType: ExpenseTypeBreakdown(expenses),
		Expenses:       expenses,
	}, nil
}
