package extractor

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/flatbot/internal/boterror"
	"fjacquet/flatbot/internal/dateutils"
	"fjacquet/flatbot/internal/models"
)

// extractionWire mirrors the JSON shape the model is prompted to produce.
type extractionWire struct {
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
	Type        *string  `json:"type"`
	Confidence  float64  `json:"confidence"`
}

// ParseExtraction parses the model's response text into ExtractedFields.
// Models wrap JSON in markdown fences or prose; everything outside the
// outermost braces is discarded before unmarshaling.
func ParseExtraction(text string) (models.ExtractedFields, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return models.ExtractedFields{}, &boterror.ExtractionError{Reason: "no JSON object in model response"}
	}
	text = text[start : end+1]

	var wire extractionWire
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		return models.ExtractedFields{}, &boterror.ExtractionError{Reason: "malformed JSON in model response", Err: err}
	}

	fields := models.ExtractedFields{
		Confidence: clamp01(wire.Confidence),
	}
	if wire.Amount != nil && *wire.Amount > 0 {
		amount := decimal.NewFromFloat(*wire.Amount)
		fields.Amount = &amount
	}
	if wire.Category != nil {
		fields.Category = strings.TrimSpace(*wire.Category)
	}
	if wire.Description != nil {
		fields.Description = strings.TrimSpace(*wire.Description)
	}
	if wire.Date != nil {
		// An unparseable date is treated as absent so it gets asked later.
		if iso, err := dateutils.NormalizeISO(*wire.Date); err == nil {
			fields.Date = iso
		}
	}
	if wire.Type != nil {
		switch strings.ToLower(strings.TrimSpace(*wire.Type)) {
		case string(models.EntryExpense):
			fields.Type = models.EntryExpense
		case string(models.EntryIncome):
			fields.Type = models.EntryIncome
		}
	}

	return fields, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
