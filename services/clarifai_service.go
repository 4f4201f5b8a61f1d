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

// Clarifai's public "general" image model. The model ID is part of the URL
// because the API routes requests by model.
const defaultClarifaiURL = "https://api.clarifai.com/v2/models/aaa03c23b3724a16a56b629203edc62c/outputs"

type ClarifaiService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClarifaiService() *ClarifaiService {
	return &ClarifaiService{
		apiKey:  os.Getenv("CLARIFAI_API_KEY"),
		baseURL: defaultClarifaiURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type clarifaiImage struct {
	Base64 string `json:"base64"`
}

type clarifaiInput struct {
	Data struct {
		Image clarifaiImage `json:"image"`
	} `json:"data"`
}

type clarifaiRequest struct {
	UserAppID struct {
		UserID string `json:"user_id"`
		AppID  string `json:"app_id"`
	} `json:"user_app_id"`
	Inputs []clarifaiInput `json:"inputs"`
}

type clarifaiResponse struct {
	Outputs []struct {
		Data struct {
			Concepts []VisualConcept `json:"concepts"`
		} `json:"data"`
	} `json:"outputs"`
}

// ClassifyImage sends a base64-encoded image to the classifier and returns
// its concepts in the order the service ranked them (descending confidence).
// Any non-2xx status or unparseable body comes back as *ExternalServiceError,
// which callers treat as "proceed to manual entry".
func (s *ClarifaiService) ClassifyImage(ctx context.Context, imageBase64 string) ([]VisualConcept, error) {
	var payload clarifaiRequest
	payload.UserAppID.UserID = "clarifai"
	payload.UserAppID.AppID = "main"
	input := clarifaiInput{}
	input.Data.Image = clarifaiImage{Base64: imageBase64}
	payload.Inputs = []clarifaiInput{input}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal classification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create classification request: %w", err)
	}
	req.Header.Set("Authorization", "Key "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Clarifai API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Clarifai response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ExternalServiceError{Service: "Clarifai API", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var cr clarifaiResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil, &ExternalServiceError{Service: "Clarifai API", StatusCode: resp.StatusCode, Body: "malformed response: " + err.Error()}
	}
	if len(cr.Outputs) == 0 {
		return nil, nil
	}
	return cr.Outputs[0].Data.Concepts, nil
}
