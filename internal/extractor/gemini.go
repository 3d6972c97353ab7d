// Package extractor turns raw receipt text into a structured transaction
// guess using the Gemini API.
package extractor

import (
	"context"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"fjacquet/flatbot/internal/boterror"
	"fjacquet/flatbot/internal/logging"
	"fjacquet/flatbot/internal/models"
)

const extractionPrompt = `You are helping a residential flat association record its finances.
Extract the following from the receipt or note text below and answer with a single JSON object, nothing else:
{
  "amount": <number or null>,
  "category": <short category string or null>,
  "description": <one-line description or null>,
  "date": <"YYYY-MM-DD" or null>,
  "type": <"expense" or "income" or null>,
  "confidence": <0.0 to 1.0, how confident you are in the extraction overall>
}

Text:
`

// Gemini extracts structured fields from free-form text via the Gemini API.
type Gemini struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	log     logging.Logger
}

// NewGemini creates a Gemini extractor. The timeout bounds each extraction
// call; zero falls back to 30 seconds.
func NewGemini(ctx context.Context, apiKey, modelName string, timeout time.Duration, log logging.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, &boterror.ConfigError{Key: "GEMINI_API_KEY", Reason: "gemini api key is required"}
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = logging.GetLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &boterror.AdapterError{Adapter: "gemini", Op: "create client", Err: err}
	}

	return &Gemini{
		client:  client,
		model:   client.GenerativeModel(modelName),
		timeout: timeout,
		log:     log,
	}, nil
}

// ExtractFields asks the model to structure the raw text. Malformed model
// output surfaces as an ExtractionError, never as a raw parse failure.
func (g *Gemini) ExtractFields(ctx context.Context, rawText string) (models.ExtractedFields, error) {
	if strings.TrimSpace(rawText) == "" {
		return models.ExtractedFields{}, &boterror.ExtractionError{Reason: "empty input text"}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.model.GenerateContent(ctx, genai.Text(extractionPrompt+rawText))
	if err != nil {
		return models.ExtractedFields{}, &boterror.ExtractionError{Reason: "model call failed", Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return models.ExtractedFields{}, &boterror.ExtractionError{Reason: "empty model response"}
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	fields, err := ParseExtraction(responseText.String())
	if err != nil {
		return models.ExtractedFields{}, err
	}

	g.log.Debug("Extracted fields from receipt text",
		logging.Field{Key: logging.FieldCategory, Value: fields.Category},
		logging.Field{Key: "confidence", Value: fields.Confidence})
	return fields, nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	return g.client.Close()
}
