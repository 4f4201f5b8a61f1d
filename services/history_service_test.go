package services

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/itz-me-mohammed/CalTrack/models"
)

func seedMeal(t *testing.T, svc *HistoryService, userID uuid.UUID, loggedAt time.Time, calories int, protein float64) models.MealLog {
	t.Helper()
	meal := models.MealLog{
		UserID:      userID,
		FoodName:    "test food",
		ServingQty:  1,
		ServingUnit: "serving",
		Calories:    calories,
		Protein:     protein,
		LoggedAt:    loggedAt,
	}
	if err := svc.db.Create(&meal).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return meal
}

func TestHistory_GroupsByDateWithTotals(t *testing.T) {
	svc := NewHistoryService(newTestDB(t))
	userID := uuid.New()

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	seedMeal(t, svc, userID, day.Add(8*time.Hour), 100, 5)
	seedMeal(t, svc, userID, day.Add(20*time.Hour), 200, 10)

	days, err := svc.History(context.Background(), userID, PeriodAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("expected 1 day group, got %d", len(days))
	}
	g := days[0]
	if g.Date != "2024-01-01" {
		t.Fatalf("unexpected date key %q", g.Date)
	}
	if len(g.Meals) != 2 {
		t.Fatalf("expected 2 meals, got %d", len(g.Meals))
	}
	if g.TotalCalories != 300 {
		t.Fatalf("expected totalCalories 300, got %v", g.TotalCalories)
	}
	if g.TotalProtein != 15 {
		t.Fatalf("expected totalProtein 15, got %v", g.TotalProtein)
	}
}

func TestHistory_DaysOrderedNewestFirst(t *testing.T) {
	svc := NewHistoryService(newTestDB(t))
	userID := uuid.New()

	now := time.Now()
	seedMeal(t, svc, userID, now.AddDate(0, 0, -2), 100, 0)
	seedMeal(t, svc, userID, now, 200, 0)
	seedMeal(t, svc, userID, now.AddDate(0, 0, -1), 300, 0)

	days, err := svc.History(context.Background(), userID, PeriodWeek)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("expected 3 day groups, got %d", len(days))
	}
	for i := 1; i < len(days); i++ {
		if days[i].Date >= days[i-1].Date {
			t.Fatalf("days not in descending order: %s before %s", days[i-1].Date, days[i].Date)
		}
	}
}

func TestHistory_PeriodWeekExcludesOlderMeals(t *testing.T) {
	svc := NewHistoryService(newTestDB(t))
	userID := uuid.New()

	seedMeal(t, svc, userID, time.Now().AddDate(0, 0, -10), 100, 0)
	seedMeal(t, svc, userID, time.Now(), 200, 0)

	week, err := svc.History(context.Background(), userID, PeriodWeek)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(week) != 1 {
		t.Fatalf("expected old meal filtered out, got %d groups", len(week))
	}

	all, err := svc.History(context.Background(), userID, PeriodAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both meals under 'all', got %d groups", len(all))
	}
}

func TestHistory_ScopedToUser(t *testing.T) {
	svc := NewHistoryService(newTestDB(t))
	userID := uuid.New()
	seedMeal(t, svc, uuid.New(), time.Now(), 500, 0)

	days, err := svc.History(context.Background(), userID, PeriodAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 0 {
		t.Fatalf("expected no groups for other user's meals, got %d", len(days))
	}
}

func TestDashboard_EmptyDayIsAllZeros(t *testing.T) {
	svc := NewHistoryService(newTestDB(t))

	stats, meals, err := svc.Dashboard(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(stats, &DashboardStats{}) {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
	if len(meals) != 0 {
		t.Fatalf("expected no meals, got %d", len(meals))
	}
}

func TestDashboard_SumsTodayOnly(t *testing.T) {
	svc := NewHistoryService(newTestDB(t))
	userID := uuid.New()

	seedMeal(t, svc, userID, time.Now(), 250, 12.5)
	seedMeal(t, svc, userID, time.Now(), 150, 7.5)
	seedMeal(t, svc, userID, time.Now().AddDate(0, 0, -1), 999, 99) // yesterday

	stats, meals, err := svc.Dashboard(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalCalories != 400 || stats.TotalProtein != 20 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.MealCount != 2 || len(meals) != 2 {
		t.Fatalf("expected 2 meals today, got count=%d len=%d", stats.MealCount, len(meals))
	}
}

func TestDashboard_Idempotent(t *testing.T) {
	svc := NewHistoryService(newTestDB(t))
	userID := uuid.New()
	seedMeal(t, svc, userID, time.Now(), 250, 12.5)

	first, _, err := svc.Dashboard(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _, err := svc.Dashboard(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("dashboard not idempotent: %+v vs %+v", first, second)
	}
}
