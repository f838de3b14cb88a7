package services

import (
	"context"
	"fmt"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"
)

type FinancialOverview struct {
	TotalTrips    int     `json:"totalTrips"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetProfit     float64 `json:"netProfit"`
	ProfitMargin  float64 `json:"profitMargin"`
}

type TripStatusSummary struct {
	Status  models.TripStatus `json:"status"`
	Count   int               `json:"count"`
	Revenue float64           `json:"revenue"`
}

type FinancialReport struct {
	Period         Period               `json:"period"`
	Overview       FinancialOverview    `json:"overview"`
	TripsByStatus  []TripStatusSummary  `json:"tripsByStatus"`
	ExpensesByType []ExpenseTypeSummary `json:"expensesByType"`
	Trips          []models.Trip        `json:"trips"`
	Expenses       []models.Expense     `json:"expenses"`
}

// BuildFinancialReport summarizes revenue and cost over rng.
//
// Trips are selected by departure date while the expense total comes from a
// separate query on the expense date, so totalExpenses need not equal the sum
// of the nested trip expenses.
func (s ReportsService) BuildFinancialReport(ctx context.Context, rng domain.DateRange) (FinancialReport, error) {
	trips, err := s.Store.FindTrips(ctx, repositories.TripFilter{Range: rng, WithExpenses: true, WithRelations: true})
	if err != nil {
		return FinancialReport{}, domain.WrapStore("fetch trips", err)
	}
	expenses, err := s.Store.FindExpenses(ctx, repositories.ExpenseFilter{Range: rng})
	if err != nil {
		return FinancialReport{}, domain.WrapStore("fetch expenses", err)
	}

	overview := Overview(SumTripValues(trips), SumExpenseValues(expenses))
	overview.TotalTrips = len(trips)

	utils.LogEvent(s.RequestID, "reports", "financial", fmt.Sprintf("trips=%d expenses=%d", len(trips), len(expenses)))
	return FinancialReport{
		Period:         periodOf(rng),
		Overview:       overview,
		TripsByStatus:  TripStatusBreakdown(trips),
		ExpensesByType: ExpenseTypeBreakdown(expenses),
		Trips:          trips,
		Expenses:       expenses,
	}, nil
}

// Overview derives net profit and margin. Margin is 0 unless revenue is positive.
func Overview(revenue, expenses float64) FinancialOverview {
	net := revenue - expenses
	margin := 0.0
	if revenue > 0 {
		margin = net / revenue * 100
	}
	return FinancialOverview{
		TotalRevenue:  revenue,
		TotalExpenses: expenses,
		NetProfit:     net,
		ProfitMargin:  margin,
	}
}

// TripStatusBreakdown counts trips and revenue per status present, in enum order.
func TripStatusBreakdown(trips []models.Trip) []TripStatusSummary {
	byStatus := map[models.TripStatus]*TripStatusSummary{}
	order := []models.TripStatus{}
	for _, t := range trips {
		sum, ok := byStatus[t.Status]
		if !ok {
			sum = &TripStatusSummary{Status: t.Status}
			byStatus[t.Status] = sum
			order = append(order, t.Status)
		}
		sum.Count++
		sum.Revenue += t.Value()
	}

	out := make([]TripStatusSummary, 0, len(byStatus))
	for _, st := range models.TripStatuses {
		if sum, ok := byStatus[st]; ok {
			out = append(out, *sum)
		}
	}
	for _, st := range order {
		if !st.Valid() {
			out = append(out, *byStatus[st])
		}
	}
	return out
}
