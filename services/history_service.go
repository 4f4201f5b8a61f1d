package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itz-me-mohammed/CalTrack/models"
)

// Period is the relative window used to filter history queries.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// ParsePeriod maps the query-string value onto a known window, defaulting
// to a week like the app's history screen does.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodMonth:
		return PeriodMonth
	case PeriodAll:
		return PeriodAll
	default:
		return PeriodWeek
	}
}

// DayGroup is one calendar day of history: the day's meals (newest first)
// and the nutrient totals over them.
type DayGroup struct {
	Date          string           `json:"date"`
	Meals         []models.MealLog `json:"meals"`
	TotalCalories float64          `json:"totalCalories"`
	TotalProtein  float64          `json:"totalProtein"`
	TotalCarbs    float64          `json:"totalCarbs"`
	TotalFat      float64          `json:"totalFat"`
}

// DashboardStats summarizes the current calendar day.
type DashboardStats struct {
	TotalCalories float64 `json:"totalCalories"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalCarbs    float64 `json:"totalCarbs"`
	TotalFat      float64 `json:"totalFat"`
	MealCount     int     `json:"mealCount"`
}

type HistoryService struct {
	db *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService { return &HistoryService{db: db} }

// History returns the user's meals within the period, grouped by local
// calendar date. Groups come back in first-seen order, which is descending
// date because rows are ordered by logged_at DESC.
func (s *HistoryService) History(ctx context.Context, userID uuid.UUID, period Period) ([]DayGroup, error) {
	q := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("logged_at DESC")

	now := time.Now()
	switch period {
	case PeriodWeek:
		q = q.Where("logged_at >= ?", now.AddDate(0, 0, -7))
	case PeriodMonth:
		q = q.Where("logged_at >= ?", now.AddDate(0, -1, 0))
	}

	var meals []models.MealLog
	if err := q.Find(&meals).Error; err != nil {
		return nil, err
	}
	return groupMealsByDate(meals), nil
}

func groupMealsByDate(meals []models.MealLog) []DayGroup {
	groups := make([]DayGroup, 0)
	idx := make(map[string]int)

	for _, m := range meals {
		date := m.LoggedAt.Local().Format("2006-01-02")
		i, ok := idx[date]
		if !ok {
			i = len(groups)
			idx[date] = i
			groups = append(groups, DayGroup{Date: date})
		}
		groups[i].Meals = append(groups[i].Meals, m)
		groups[i].TotalCalories += float64(m.Calories)
		groups[i].TotalProtein += m.Protein
		groups[i].TotalCarbs += m.Carbs
		groups[i].TotalFat += m.Fat
	}
	return groups
}

// Dashboard sums today's meals. Output is all zeros when nothing was logged.
func (s *HistoryService) Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardStats, []models.MealLog, error) {
	now := time.Now()
	var meals []models.MealLog
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND logged_at BETWEEN ? AND ?", userID, dayStart(now), dayEnd(now)).
		Order("logged_at DESC").
		Find(&meals).Error
	if err != nil {
		return nil, nil, err
	}
	return sumMeals(meals), meals, nil
}

func sumMeals(meals []models.MealLog) *DashboardStats {
	stats := &DashboardStats{}
	for _, m := range meals {
		stats.TotalCalories += float64(m.Calories)
		stats.TotalProtein += m.Protein
		stats.TotalCarbs += m.Carbs
		stats.TotalFat += m.Fat
		stats.MealCount++
	}
	return stats
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
