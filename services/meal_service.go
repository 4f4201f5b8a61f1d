package services

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/itz-me-mohammed/CalTrack/models"
)

// ImageClassifier turns image bytes into ranked visual concepts.
type ImageClassifier interface {
	ClassifyImage(ctx context.Context, imageBase64 string) ([]VisualConcept, error)
}

// NutritionLookup resolves a natural-language food description into
// structured food items.
type NutritionLookup interface {
	SearchFood(ctx context.Context, query string) ([]Food, error)
}

// PhotoStore persists the captured meal photo and returns its public URL.
type PhotoStore interface {
	UploadMealPhoto(ctx context.Context, imageBase64, keyPrefix string) (string, error)
}

// MealEventPublisher pushes meal changes to the user's open sessions.
type MealEventPublisher interface {
	BroadcastMealEvent(userID uuid.UUID, payload any)
}

type LogStatus string

const (
	// StatusSaved means every matched food was persisted.
	StatusSaved LogStatus = "saved"
	// StatusNoFoodDetected means the classifier found nothing food-related;
	// the lookup service was never called.
	StatusNoFoodDetected LogStatus = "no_food_detected"
	// StatusNoMatch means the lookup returned zero foods for the query; the
	// user should try different wording.
	StatusNoMatch LogStatus = "no_match"
)

// LogResult is the outcome of one ingestion attempt. Suggestion carries the
// derived label query back to the client so it can pre-fill manual entry.
type LogResult struct {
	Status     LogStatus        `json:"status"`
	Query      string           `json:"query,omitempty"`
	Suggestion string           `json:"suggestion,omitempty"`
	Meals      []models.MealLog `json:"meals,omitempty"`
}

type MealService struct {
	db         *gorm.DB
	classifier ImageClassifier
	nutrition  NutritionLookup
	photos     PhotoStore
	events     MealEventPublisher
	log        *zap.SugaredLogger

	mu       sync.Mutex
	inflight map[uuid.UUID]struct{}
}

// NewMealService wires the ingestion pipeline. photos and events may be nil
// when S3 or the realtime hub are not configured.
func NewMealService(db *gorm.DB, classifier ImageClassifier, nutrition NutritionLookup, photos PhotoStore, events MealEventPublisher, log *zap.SugaredLogger) *MealService {
	return &MealService{
		db:         db,
		classifier: classifier,
		nutrition:  nutrition,
		photos:     photos,
		events:     events,
		log:        log,
		inflight:   make(map[uuid.UUID]struct{}),
	}
}

// LogFromPhoto runs the photo protocol: classify, filter, look up, persist.
// A classification failure propagates as *ExternalServiceError so the caller
// can offer manual entry; it never aborts the capture flow as a whole.
func (s *MealService) LogFromPhoto(ctx context.Context, userID uuid.UUID, imageBase64 string) (*LogResult, error) {
	if userID == uuid.Nil {
		return nil, &ValidationError{Field: "user", Reason: "authentication required"}
	}
	if strings.TrimSpace(imageBase64) == "" {
		return nil, &ValidationError{Field: "image_base64", Reason: "image payload is required"}
	}
	if err := s.acquire(userID); err != nil {
		return nil, err
	}
	defer s.release(userID)

	concepts, err := s.classifier.ClassifyImage(ctx, imageBase64)
	if err != nil {
		return nil, err
	}

	labels := FilterFoodConcepts(concepts)
	if len(labels) == 0 {
		return &LogResult{Status: StatusNoFoodDetected}, nil
	}

	query := strings.Join(labels, ", ")
	foods, err := s.nutrition.SearchFood(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(foods) == 0 {
		return &LogResult{Status: StatusNoMatch, Query: query, Suggestion: query}, nil
	}

	var imageURI *string
	if s.photos != nil {
		url, upErr := s.photos.UploadMealPhoto(ctx, imageBase64, userID.String())
		if upErr != nil {
			// The nutrition data is still worth keeping; the log row just
			// won't reference a photo.
			s.log.Warnw("meal photo upload failed", "user_id", userID, "error", upErr)
		} else {
			imageURI = &url
		}
	}

	saved, err := s.saveFoods(ctx, userID, foods, imageURI)
	if err != nil {
		return nil, err
	}
	s.publish(userID, "meal_logged", saved)
	return &LogResult{Status: StatusSaved, Query: query, Meals: saved}, nil
}

// LogFromText runs the text protocol: look up the description, persist.
func (s *MealService) LogFromText(ctx context.Context, userID uuid.UUID, query string) (*LogResult, error) {
	if userID == uuid.Nil {
		return nil, &ValidationError{Field: "user", Reason: "authentication required"}
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &ValidationError{Field: "query", Reason: "enter a food description, e.g. '1 apple' or '2 eggs'"}
	}
	if err := s.acquire(userID); err != nil {
		return nil, err
	}
	defer s.release(userID)

	foods, err := s.nutrition.SearchFood(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(foods) == 0 {
		return &LogResult{Status: StatusNoMatch, Query: query}, nil
	}

	saved, err := s.saveFoods(ctx, userID, foods, nil)
	if err != nil {
		return nil, err
	}
	s.publish(userID, "meal_logged", saved)
	return &LogResult{Status: StatusSaved, Query: query, Meals: saved}, nil
}

// saveFoods converts each food item into a MealLog and inserts the batch in
// one transaction. Inserts run sequentially so the first failure aborts and
// rolls back everything already written for this submission.
func (s *MealService) saveFoods(ctx context.Context, userID uuid.UUID, foods []Food, imageURI *string) ([]models.MealLog, error) {
	batchID := uuid.New()
	loggedAt := time.Now()

	logs := make([]models.MealLog, 0, len(foods))
	for _, f := range foods {
		logs = append(logs, buildMealLog(userID, batchID, f, imageURI, loggedAt))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range logs {
			if err := tx.Create(&logs[i]).Error; err != nil {
				return &PersistenceError{FoodName: logs[i].FoodName, Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// buildMealLog applies the defaulting and rounding rules: missing nutrients
// become 0, calories round to a non-negative int, macros round to two
// decimals, serving defaults to 1 "serving". LoggedAt is capture time, not
// anything the nutrition API reports.
func buildMealLog(userID, batchID uuid.UUID, f Food, imageURI *string, loggedAt time.Time) models.MealLog {
	qty := f.ServingQty
	if qty == 0 {
		qty = 1
	}
	unit := f.ServingUnit
	if unit == "" {
		unit = "serving"
	}

	return models.MealLog{
		UserID:      userID,
		BatchID:     batchID,
		FoodName:    f.FoodName,
		ServingQty:  qty,
		ServingUnit: unit,
		Calories:    roundCalories(f.Calories),
		Protein:     round2(deref(f.Protein)),
		Carbs:       round2(deref(f.Carbs)),
		Fat:         round2(deref(f.Fat)),
		Fiber:       round2(deref(f.Fiber)),
		Sugar:       round2(deref(f.Sugar)),
		Sodium:      round2(deref(f.Sodium)),
		ImageURI:    imageURI,
		LoggedAt:    loggedAt,
	}
}

// Delete removes one meal log owned by the user.
func (s *MealService) Delete(ctx context.Context, userID, mealID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", mealID, userID).
		Delete(&models.MealLog{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.publish(userID, "meal_deleted", mealID)
	return nil
}

func (s *MealService) publish(userID uuid.UUID, event string, payload any) {
	if s.events == nil {
		return
	}
	s.events.BroadcastMealEvent(userID, map[string]any{"type": event, "data": payload})
}

// acquire implements the per-user busy flag: one submission in flight per
// user session, duplicates rejected instead of queued.
func (s *MealService) acquire(userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[userID]; busy {
		return ErrSubmissionInFlight
	}
	s.inflight[userID] = struct{}{}
	return nil
}

func (s *MealService) release(userID uuid.UUID) {
	s.mu.Lock()
	delete(s.inflight, userID)
	s.mu.Unlock()
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func roundCalories(p *float64) int {
	v := int(math.Round(deref(p)))
	if v < 0 {
		return 0
	}
	return v
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
