// Package generator produces serialized trip itineraries.
// The output is intentionally an opaque JSON string: it is stored verbatim
// on the TripRecord and only interpreted later by domain.ParseTripDetail,
// which tolerates whatever the model actually returned.
package generator

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Request carries the user's trip preferences into generation.
type Request struct {
	Country      string
	NumberOfDays int
	TravelStyle  string
	Interests    string
	Budget       string
	GroupType    string
}

// Generator is implemented by itinerary producers. The trip service depends
// on this interface so it can be unit-tested without a model call.
type Generator interface {
	// Generate returns the serialized itinerary detail for the request.
	Generate(ctx context.Context, req Request) (string, error)
}

// GeminiGenerator implements Generator using Google's Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini-backed generator.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("generator.NewGeminiGenerator: API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("generator.NewGeminiGenerator: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate asks the model for a JSON itinerary and returns the raw text.
// The response is not validated here — ParseTripDetail is the seam that
// absorbs malformed output downstream.
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(buildPrompt(req), genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("generator.GeminiGenerator.Generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("generator.GeminiGenerator.Generate: empty response")
	}
	return text, nil
}

// buildPrompt renders the generation instructions for one request.
func buildPrompt(req Request) string {
	return fmt.Sprintf(`Generate a %d-day travel itinerary for %s based on the following preferences:
Budget: %s
Interests: %s
Travel style: %s
Group type: %s
Return ONLY a JSON object with this exact structure and no markdown fences:
{
  "name": "descriptive trip title",
  "country": "%s",
  "duration": %d,
  "travelStyle": "%s",
  "groupType": "%s",
  "budget": "%s",
  "interests": "%s",
  "estimatedPrice": "price in EUR, e.g. €1200",
  "description": "brief overview, max 100 words",
  "bestTimeToVisit": ["season with reason", "..."],
  "weatherInfo": ["season with temperature range", "..."],
  "itinerary": [
    {"day": 1, "location": "city or area", "activities": [
      {"time": "Morning", "description": "short activity"},
      {"time": "Afternoon", "description": "short activity"},
      {"time": "Evening", "description": "short activity"}
    ]}
  ]
}`,
		req.NumberOfDays, req.Country, req.Budget, req.Interests, req.TravelStyle, req.GroupType,
		req.Country, req.NumberOfDays, req.TravelStyle, req.GroupType, req.Budget, req.Interests,
	)
}
