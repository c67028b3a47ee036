// Package advisor defines the generative-AI backend interface of the app and
// the typed results its calls produce. The mechanic search returns free-form
// Markdown that the recommend package decodes; the other calls are
// schema-constrained JSON.
package advisor

import (
	"context"

	"github.com/bhorvath/carwise/internal/recommend"
)

// Coordinates is the user's location, acquired client-side.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// MechanicQuery describes one mechanic search.
type MechanicQuery struct {
	Problem  string
	Location Coordinates
	RadiusKm int
}

// MechanicResult carries the raw Markdown the model produced plus the Google
// Maps places the answer was grounded on. Decoding into cards happens in the
// recommend package; keeping the raw text around lets the UI fall back to
// showing it when decoding finds no entries.
type MechanicResult struct {
	RawText string
	Shops   []VerifiedShop
}

// VerifiedShop is a place from the model's Maps grounding metadata. These are
// real businesses the search was grounded on, with a link back to Maps.
type VerifiedShop struct {
	Title   string `json:"title"`
	URI     string `json:"uri"`
	Snippet string `json:"snippet"`
}

type QuoteRequest struct {
	Description string
	PriceHUF    string
	CarDetails  string
	Mileage     string
	Photo       *InlinePhoto
}

// InlinePhoto is an image sent inline with a request. It is never persisted.
type InlinePhoto struct {
	Data     []byte
	MimeType string
}

type QuoteAnalysis struct {
	Verdict          string   `json:"verdict"` // Fair | Overpriced | Suspiciously Low | Unclear
	MarketPriceRange string   `json:"marketPriceRange"`
	Summary          string   `json:"summary"`
	RedFlags         []string `json:"redFlags"`
	Advice           []string `json:"advice"`
}

type DiagnosisRequest struct {
	Description string
	Photo       *InlinePhoto
}

type DiagnosisCause struct {
	Cause       string `json:"cause"`
	Probability string `json:"probability"`
	Description string `json:"description"`
}

type Diagnosis struct {
	UrgencyLevel       string           `json:"urgencyLevel"` // Low | Medium | High | Critical
	EstimatedCostRange string           `json:"estimatedCostRange"`
	PossibleCauses     []DiagnosisCause `json:"possibleCauses"`
	NextSteps          []string         `json:"nextSteps"`
}

type AdAnalysis struct {
	TrustScore     int      `json:"trustScore"` // 0-100
	VerdictShort   string   `json:"verdictShort"`
	RedFlags       []string `json:"redFlags"`
	GreenFlags     []string `json:"greenFlags"`
	QuestionsToAsk []string `json:"questionsToAsk"`
}

type MaintenanceItem struct {
	Item          string `json:"item"`
	DueInKm       string `json:"dueInKm"`
	EstimatedCost string `json:"estimatedCost"`
}

type CommonFault struct {
	Fault     string `json:"fault"`
	RiskLevel string `json:"riskLevel"` // Low | Medium | High
}

type CostForecast struct {
	CarSummary          string            `json:"carSummary"`
	AnnualCostEstimate  string            `json:"annualCostEstimate"`
	UpcomingMaintenance []MaintenanceItem `json:"upcomingMaintenance"`
	CommonFaults        []CommonFault     `json:"commonFaults"`
}

type Advisor interface {
	FindMechanics(ctx context.Context, query MechanicQuery) (*MechanicResult, error)
	AnalyzeQuote(ctx context.Context, req QuoteRequest) (*QuoteAnalysis, error)
	Diagnose(ctx context.Context, req DiagnosisRequest) (*Diagnosis, error)
	AnalyzeAd(ctx context.Context, adText string) (*AdAnalysis, error)
	PredictCosts(ctx context.Context, carModel, mileage string) (*CostForecast, error)
}

// StreamAdvisor is an optional extension of Advisor that can stream decoded
// mechanic cards incrementally as the model produces output.
type StreamAdvisor interface {
	Advisor
	// FindMechanicsStream sends a StreamEvent per complete list entry parsed
	// from the model stream. The channel is closed when the stream ends or
	// ctx is cancelled. A failure mid-stream arrives as an event with Err set.
	FindMechanicsStream(ctx context.Context, query MechanicQuery) (<-chan StreamEvent, error)
}

// StreamEvent is either a decoded card or an error emitted during streaming.
type StreamEvent struct {
	Card *recommend.ViewModel
	Err  error
}
