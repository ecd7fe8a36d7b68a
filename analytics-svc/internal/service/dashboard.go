package service

import (
	"math"
	"sort"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/analytics-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/lifecycle"
)

const (
	popularDishLimit = 5
	revenueDays      = 7
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeDashboard folds orders inside window into dashboard statistics.
// Daily revenue covers the seven local calendar days ending on now's date.
// Popular dishes with equal quantities keep the order of first appearance.
func ComputeDashboard(orders []domain.OrderRecord, window domain.Window, now time.Time, loc *time.Location) domain.DashboardStats {
	if loc == nil {
		loc = time.UTC
	}

	stats := domain.DashboardStats{
		PopularDishes:   []domain.PopularDish{},
		RevenueByPeriod: make([]domain.PeriodRevenue, revenueDays),
	}

	today := now.In(loc)
	dayIndex := make(map[string]int, revenueDays)
	for i := 0; i < revenueDays; i++ {
		date := domain.DayKey(today.AddDate(0, 0, i-(revenueDays-1)), loc)
		stats.RevenueByPeriod[i] = domain.PeriodRevenue{Date: date}
		dayIndex[date] = i
	}

	statusCounts := make(map[lifecycle.Status]int, len(lifecycle.Statuses()))
	clients := make(map[string]struct{})
	dishIndex := make(map[int]int)
	var revenue float64

	for _, order := range orders {
		if !window.Contains(order.CreatedAt) {
			continue
		}
		stats.TotalOrders++
		revenue += order.Total
		clients[order.ClientID] = struct{}{}
		statusCounts[order.Status]++

		if i, ok := dayIndex[domain.DayKey(order.CreatedAt, loc)]; ok {
			stats.RevenueByPeriod[i].Revenue += order.Total
			stats.RevenueByPeriod[i].Orders++
		}

		for _, item := range order.Items {
			i, ok := dishIndex[item.DishID]
			if !ok {
				i = len(stats.PopularDishes)
				dishIndex[item.DishID] = i
				stats.PopularDishes = append(stats.PopularDishes, domain.PopularDish{
					DishID:   item.DishID,
					DishName: item.DishName,
				})
			}
			stats.PopularDishes[i].Orders += item.Quantity
		}
	}

	stats.TotalRevenue = round2(revenue)
	stats.TotalClients = len(clients)
	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = round2(revenue / float64(stats.TotalOrders))
	}

	sort.SliceStable(stats.PopularDishes, func(i, j int) bool {
		return stats.PopularDishes[i].Orders > stats.PopularDishes[j].Orders
	})
	if len(stats.PopularDishes) > popularDishLimit {
		stats.PopularDishes = stats.PopularDishes[:popularDishLimit]
	}

	for i := range stats.RevenueByPeriod {
		stats.RevenueByPeriod[i].Revenue = round2(stats.RevenueByPeriod[i].Revenue)
	}

	for _, status := range lifecycle.Statuses() {
		stats.OrdersByStatus = append(stats.OrdersByStatus, domain.StatusCount{
			Status: status,
			Count:  statusCounts[status],
		})
	}
	return stats
}
