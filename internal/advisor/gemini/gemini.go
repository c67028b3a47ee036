// Package gemini implements the advisor interface on the Google Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/bhorvath/carwise/internal/advisor"
	"github.com/bhorvath/carwise/internal/recommend"
)

type GeminiAdvisor struct {
	client *genai.Client
	model  string
}

func NewGeminiAdvisor(ctx context.Context, apiKey, model string) (*GeminiAdvisor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiAdvisor{client: client, model: model}, nil
}

// mechanicConfig grounds the search with the Google Maps tool at the user's
// coordinates so the model can return real nearby shops.
func mechanicConfig(loc advisor.Coordinates) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}},
		ToolConfig: &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{
					Latitude:  genai.Ptr(loc.Latitude),
					Longitude: genai.Ptr(loc.Longitude),
				},
			},
		},
	}
}

func (a *GeminiAdvisor) FindMechanics(ctx context.Context, query advisor.MechanicQuery) (*advisor.MechanicResult, error) {
	contents := []*genai.Content{genai.NewContentFromText(query.Prompt(), genai.RoleUser)}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, mechanicConfig(query.Location))
	if err != nil {
		return nil, fmt.Errorf("failed to call gemini: %w", err)
	}

	return &advisor.MechanicResult{
		RawText: resp.Text(),
		Shops:   verifiedShops(resp),
	}, nil
}

// verifiedShops pulls the Maps places the answer was grounded on out of the
// response metadata.
func verifiedShops(resp *genai.GenerateContentResponse) []advisor.VerifiedShop {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}

	var shops []advisor.VerifiedShop
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Maps == nil {
			continue
		}
		shops = append(shops, advisor.VerifiedShop{
			Title:   chunk.Maps.Title,
			URI:     chunk.Maps.URI,
			Snippet: chunk.Maps.Text,
		})
	}
	return shops
}

// FindMechanicsStream implements advisor.StreamAdvisor. It emits a decoded
// card each time the accumulated stream text completes one list entry: a new
// bullet line means the previous entry can no longer grow.
func (a *GeminiAdvisor) FindMechanicsStream(ctx context.Context, query advisor.MechanicQuery) (<-chan advisor.StreamEvent, error) {
	contents := []*genai.Content{genai.NewContentFromText(query.Prompt(), genai.RoleUser)}

	// Buffer of 8 keeps the decoder goroutine from blocking between entry
	// emissions while the caller is writing the previous card out.
	ch := make(chan advisor.StreamEvent, 8)

	go func() {
		defer close(ch)

		ordinal := 0
		var entry, lineBuf strings.Builder

		flush := func() {
			raw := strings.TrimSpace(entry.String())
			entry.Reset()
			if raw == "" {
				return
			}
			items := recommend.SplitText(raw)
			if len(items) == 0 {
				return
			}
			item := items[0]
			item.Ordinal = ordinal
			ordinal++
			card := recommend.Adapt(recommend.DecodeItem(item))
			ch <- advisor.StreamEvent{Card: &card}
		}

		feedLine := func(line string) {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "- ") {
				flush()
			}
			entry.WriteString(line)
			entry.WriteByte('\n')
		}

		for resp, err := range a.client.Models.GenerateContentStream(ctx, a.model, contents, mechanicConfig(query.Location)) {
			if err != nil {
				if ctx.Err() == nil {
					ch <- advisor.StreamEvent{Err: fmt.Errorf("read gemini stream: %w", err)}
				}
				return
			}
			for _, c := range resp.Text() {
				if c == '\n' {
					feedLine(lineBuf.String())
					lineBuf.Reset()
				} else {
					lineBuf.WriteRune(c)
				}
			}
		}

		if tail := lineBuf.String(); strings.TrimSpace(tail) != "" {
			feedLine(tail)
		}
		flush()
	}()

	return ch, nil
}

func (a *GeminiAdvisor) AnalyzeQuote(ctx context.Context, req advisor.QuoteRequest) (*advisor.QuoteAnalysis, error) {
	contents := contentsWithPhoto(req.Prompt(), req.Photo)

	var result advisor.QuoteAnalysis
	if err := a.generateJSON(ctx, contents, quoteSchema, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *GeminiAdvisor) Diagnose(ctx context.Context, req advisor.DiagnosisRequest) (*advisor.Diagnosis, error) {
	contents := contentsWithPhoto(req.Prompt(), req.Photo)

	var result advisor.Diagnosis
	if err := a.generateJSON(ctx, contents, diagnosisSchema, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *GeminiAdvisor) AnalyzeAd(ctx context.Context, adText string) (*advisor.AdAnalysis, error) {
	contents := []*genai.Content{genai.NewContentFromText(advisor.AdPrompt(adText), genai.RoleUser)}

	var result advisor.AdAnalysis
	if err := a.generateJSON(ctx, contents, adSchema, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (a *GeminiAdvisor) PredictCosts(ctx context.Context, carModel, mileage string) (*advisor.CostForecast, error) {
	contents := []*genai.Content{genai.NewContentFromText(advisor.PredictPrompt(carModel, mileage), genai.RoleUser)}

	var result advisor.CostForecast
	if err := a.generateJSON(ctx, contents, forecastSchema, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// generateJSON runs one schema-constrained call and decodes the JSON reply
// into out.
func (a *GeminiAdvisor) generateJSON(ctx context.Context, contents []*genai.Content, schema *genai.Schema, out any) error {
	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return fmt.Errorf("failed to call gemini: %w", err)
	}

	if err := json.Unmarshal([]byte(resp.Text()), out); err != nil {
		return fmt.Errorf("failed to decode gemini response: %w", err)
	}
	return nil
}

// contentsWithPhoto builds the request content, placing the photo (if any)
// before the text part.
func contentsWithPhoto(prompt string, photo *advisor.InlinePhoto) []*genai.Content {
	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	if photo != nil {
		parts = append([]*genai.Part{genai.NewPartFromBytes(photo.Data, photo.MimeType)}, parts...)
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}
