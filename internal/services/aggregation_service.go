package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"fleetops/internal/domain"
	"fleetops/internal/domain/models"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"

	"golang.org/x/sync/errgroup"
)

// TripGroupSummary rolls up the trips of one vehicle, driver or client.
type TripGroupSummary struct {
	GroupID       string        `json:"groupId"`
	Entity        models.Entity `json:"entity"`
	TripCount     int           `json:"tripCount"`
	TotalValue    float64       `json:"totalValue"`
	TotalExpenses float64       `json:"totalExpenses"`
	FinalValue    float64       `json:"finalValue"`
	Trips         []models.Trip `json:"trips"`
}

func (s ReportsService) TripsByVehicle(ctx context.Context, rng domain.DateRange) ([]TripGroupSummary, error) {
	return s.AggregateTripsBy(ctx, models.DimensionVehicle, rng)
}

func (s ReportsService) TripsByDriver(ctx context.Context, rng domain.DateRange) ([]TripGroupSummary, error) {
	return s.AggregateTripsBy(ctx, models.DimensionDriver, rng)
}

func (s ReportsService) TripsByClient(ctx context.Context, rng domain.DateRange) ([]TripGroupSummary, error) {
	return s.AggregateTripsBy(ctx, models.DimensionClient, rng)
}

// AggregateTripsBy returns one summary per distinct dimension key among the
// trips departing inside rng. Entities with no trips in range are omitted.
// Any store failure fails the whole call.
func (s ReportsService) AggregateTripsBy(ctx context.Context, d models.Dimension, rng domain.DateRange) ([]TripGroupSummary, error) {
	if d.Column() == "" {
		return nil, domain.ValidationError{Field: "dimension", Msg: fmt.Sprintf("unknown dimension %q", d)}
	}

	groups, err := s.Store.GroupTrips(ctx, d, rng)
	if err != nil {
		return nil, domain.WrapStore("group trips by "+string(d), err)
	}

	out := make([]TripGroupSummary, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit())

	for i, grp := range groups {
		g.Go(func() error {
			summary, err := s.summarizeGroup(gctx, d, grp, rng)
			if err != nil {
				return err
			}
			out[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortGroups(out)
	utils.LogEvent(s.RequestID, "reports", "aggregate", fmt.Sprintf("dimension=%s groups=%d", d, len(out)))
	return out, nil
}

func (s ReportsService) summarizeGroup(ctx context.Context, d models.Dimension, grp repositories.TripGroup, rng domain.DateRange) (TripGroupSummary, error) {
	filter := repositories.TripFilter{Range: rng, WithExpenses: true}.ByDimension(d, grp.Key)
	trips, err := s.Store.FindTrips(ctx, filter)
	if err != nil {
		return TripGroupSummary{}, domain.WrapStore("fetch trips for "+string(d)+" "+grp.Key, err)
	}
	sortTripsByDepartureDesc(trips)

	entity, err := s.Store.FindEntity(ctx, d, grp.Key)
	if err != nil {
		if !domain.IsNotFound(err) {
			return TripGroupSummary{}, domain.WrapStore("resolve "+string(d)+" "+grp.Key, err)
		}
		// deleted entity: keep the group, entity stays null
		entity = nil
	}

	totalExpenses := SumTripExpenses(trips)
	return TripGroupSummary{
		GroupID:       grp.Key,
		Entity:        entity,
		TripCount:     grp.Count,
		TotalValue:    grp.SumTripValue,
		TotalExpenses: totalExpenses,
		FinalValue:    grp.SumTripValue - totalExpenses,
		Trips:         trips,
	}, nil
}

func sortTripsByDepartureDesc(trips []models.Trip) {
	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].DepartureDate.After(trips[j].DepartureDate)
	})
}

// sortGroups orders by entity display name; unresolved entities go last.
func sortGroups(groups []TripGroupSummary) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if (a.Entity == nil) != (b.Entity == nil) {
			return a.Entity != nil
		}
		if a.Entity != nil {
			an, bn := strings.ToLower(a.Entity.DisplayName()), strings.ToLower(b.Entity.DisplayName())
			if an != bn {
				return an < bn
			}
		}
		return a.GroupID < b.GroupID
	})
}
