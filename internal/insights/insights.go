// Package insights derives spending analytics from a user's expense
// history. Everything here is a pure computation over the records handed
// in; nothing reads storage or the clock.
package insights

import (
	"math"
	"sort"
	"time"

	"chillbills/internal/models"
)

// Performance classifications for a day relative to its trailing average.
const (
	BelowAverage = "below_average"
	AboveAverage = "above_average"
)

// DailyInsight classifies one calendar day against the mean of all days
// before it.
type DailyInsight struct {
	Date                 string  `json:"date"`
	Amount               float64 `json:"amount"`
	Performance          string  `json:"performance"`
	DifferencePercentage float64 `json:"difference_percentage"`
}

// Report is the full analytics output for one user.
type Report struct {
	TotalMonthlyExpense   float64        `json:"total_monthly_expense"`
	AverageMonthlyExpense float64        `json:"average_monthly_expense"`
	AverageWeeklyExpense  float64        `json:"average_weekly_expense"`
	DailyInsights         []DailyInsight `json:"daily_insights"`
}

// Compute builds the analytics report for the given expenses relative to
// now. It is deterministic: the same expenses and the same now always
// produce the same report.
func Compute(expenses []models.Expense, now time.Time) Report {
	report := Report{DailyInsights: []DailyInsight{}}
	if len(expenses) == 0 {
		return report
	}

	now = now.UTC()

	var monthlyTotal float64
	monthlyCount := 0
	var weeklyTotal float64
	weeklyCount := 0

	for _, e := range expenses {
		date := e.Date.UTC()
		if date.Month() == now.Month() && date.Year() == now.Year() {
			monthlyTotal += e.Amount
			monthlyCount++
		}
		if now.Sub(date) <= 7*24*time.Hour {
			weeklyTotal += e.Amount
			weeklyCount++
		}
	}

	report.TotalMonthlyExpense = monthlyTotal
	report.AverageMonthlyExpense = monthlyTotal / float64(max(monthlyCount, 1))
	report.AverageWeeklyExpense = weeklyTotal / float64(max(weeklyCount, 1))
	report.DailyInsights = dailyInsights(expenses)
	return report
}

type dayTotal struct {
	day   time.Time
	total float64
}

// dailyInsights groups expenses by calendar day, then compares each day
// against the mean of all earlier days. The earliest day has no history to
// compare against and produces no entry.
func dailyInsights(expenses []models.Expense) []DailyInsight {
	totalsByDay := make(map[time.Time]float64)
	for _, e := range expenses {
		date := e.Date.UTC()
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		totalsByDay[day] += e.Amount
	}

	days := make([]dayTotal, 0, len(totalsByDay))
	for day, total := range totalsByDay {
		days = append(days, dayTotal{day: day, total: total})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].day.Before(days[j].day)
	})

	insights := make([]DailyInsight, 0, len(days))
	var runningTotal float64
	for i, d := range days {
		if i == 0 {
			runningTotal = d.total
			continue
		}

		trailingAvg := runningTotal / float64(i)

		// Strict less-than: a day exactly matching its trailing average
		// counts as above_average.
		performance := AboveAverage
		if d.total < trailingAvg {
			performance = BelowAverage
		}

		differencePct := 0.0
		if trailingAvg > 0 {
			differencePct = math.Abs((d.total-trailingAvg)/trailingAvg) * 100
		}

		insights = append(insights, DailyInsight{
			Date:                 d.day.Format("2006-01-02"),
			Amount:               d.total,
			Performance:          performance,
			DifferencePercentage: differencePct,
		})

		runningTotal += d.total
	}

	return insights
}
