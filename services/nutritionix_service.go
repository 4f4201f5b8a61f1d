package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const defaultNutritionixURL = "https://trackapi.nutritionix.com/v2/natural/nutrients"

// Food is one item Nutritionix parsed out of a natural-language query.
// Nutrient fields are pointers because the API omits or nulls them for some
// foods; defaulting to zero happens when the item is converted to a MealLog,
// never earlier.
type Food struct {
	FoodName    string   `json:"food_name"`
	ServingQty  float64  `json:"serving_qty"`
	ServingUnit string   `json:"serving_unit"`
	Calories    *float64 `json:"nf_calories"`
	Protein     *float64 `json:"nf_protein"`
	Carbs       *float64 `json:"nf_total_carbohydrate"`
	Fat         *float64 `json:"nf_total_fat"`
	Fiber       *float64 `json:"nf_dietary_fiber"`
	Sugar       *float64 `json:"nf_sugars"`
	Sodium      *float64 `json:"nf_sodium"`
}

type NutritionixService struct {
	appID   string
	appKey  string
	baseURL string
	client  *http.Client
}

func NewNutritionixService() *NutritionixService {
	return &NutritionixService{
		appID:   os.Getenv("NUTRITIONIX_APP_ID"),
		appKey:  os.Getenv("NUTRITIONIX_APP_KEY"),
		baseURL: defaultNutritionixURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type nutrientsResponse struct {
	Foods []Food `json:"foods"`
}

// SearchFood resolves a free-text description like "1 apple, 2 eggs" into
// structured food items. An empty result is not an error; it means the
// service found no match and the user should try different wording.
func (s *NutritionixService) SearchFood(ctx context.Context, query string) ([]Food, error) {
	b, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal nutrition query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create nutrition request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-app-id", s.appID)
	req.Header.Set("x-app-key", s.appKey)
	req.Header.Set("x-remote-user-id", "0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Nutritionix API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Nutritionix response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ExternalServiceError{
			Service:    "Nutritionix",
			StatusCode: resp.StatusCode,
			Body:       extractErrorDetail(body),
		}
	}

	var nr nutrientsResponse
	if err := json.Unmarshal(body, &nr); err != nil {
		return nil, &ExternalServiceError{Service: "Nutritionix", StatusCode: resp.StatusCode, Body: "malformed response: " + err.Error()}
	}
	return nr.Foods, nil
}

// extractErrorDetail prefers the JSON "message" or "error" field of an error
// body, falling back to the raw text when the body is not JSON.
func extractErrorDetail(body []byte) string {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err == nil {
		if msg, ok := data["message"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := data["error"].(string); ok && msg != "" {
			return msg
		}
	}
	return string(body)
}
