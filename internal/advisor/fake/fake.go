// Package fake is a canned Advisor backend for local development and
// end-to-end exercises without a Gemini API key.
package fake

import (
	"context"

	"github.com/bhorvath/carwise/internal/advisor"
	"github.com/bhorvath/carwise/internal/recommend"
)

const mechanicsFixture = "Here are some workshops near you:\n\n" +
	"* **Joe's Garage**\n" +
	"> Great reviews, fair prices.\n" +
	"> 📍 Main Street 5, Budapest\n" +
	"> 📞 +36 1 555 1234\n" +
	"> 🗺️ maps.google.com/?q=Joe's+Garage\n\n" +
	"* **MotorFix Kft.**\n" +
	"> Brake specialist, quick turnaround.\n" +
	"> 📍 Hungária körút 12, Budapest\n" +
	"> 🌐 motorfix.example.hu\n\n" +
	"* **Gyors Szerviz**\n" +
	"> Open on weekends.\n" +
	"> 📞 +36 30 555 9876\n"

type FakeAdvisor struct{}

func NewFakeAdvisor() *FakeAdvisor {
	return &FakeAdvisor{}
}

func (f *FakeAdvisor) FindMechanics(_ context.Context, _ advisor.MechanicQuery) (*advisor.MechanicResult, error) {
	return &advisor.MechanicResult{
		RawText: mechanicsFixture,
		Shops: []advisor.VerifiedShop{
			{
				Title:   "Joe's Garage",
				URI:     "https://maps.google.com/?cid=1",
				Snippet: "4.8 stars, 120 reviews",
			},
			{
				Title: "MotorFix Kft.",
				URI:   "https://maps.google.com/?cid=2",
			},
		},
	}, nil
}

func (f *FakeAdvisor) FindMechanicsStream(ctx context.Context, query advisor.MechanicQuery) (<-chan advisor.StreamEvent, error) {
	result, err := f.FindMechanics(ctx, query)
	if err != nil {
		return nil, err
	}

	cards := recommend.Render(result.RawText)
	ch := make(chan advisor.StreamEvent, len(cards))
	for i := range cards {
		ch <- advisor.StreamEvent{Card: &cards[i]}
	}
	close(ch)
	return ch, nil
}

func (f *FakeAdvisor) AnalyzeQuote(_ context.Context, req advisor.QuoteRequest) (*advisor.QuoteAnalysis, error) {
	return &advisor.QuoteAnalysis{
		Verdict:          "Fair",
		MarketPriceRange: "45 000 - 70 000 Ft",
		Summary:          "The quoted price for " + req.Description + " is within the usual range.",
		Advice:           []string{"Ask whether the price includes parts and labor."},
	}, nil
}

func (f *FakeAdvisor) Diagnose(_ context.Context, req advisor.DiagnosisRequest) (*advisor.Diagnosis, error) {
	return &advisor.Diagnosis{
		UrgencyLevel:       "Medium",
		EstimatedCostRange: "20 000 - 120 000 Ft",
		PossibleCauses: []advisor.DiagnosisCause{
			{Cause: "Worn brake pads", Probability: "High", Description: "Typical source of grinding noises when braking."},
		},
		NextSteps: []string{"Have the brakes inspected within a week."},
	}, nil
}

func (f *FakeAdvisor) AnalyzeAd(_ context.Context, _ string) (*advisor.AdAnalysis, error) {
	return &advisor.AdAnalysis{
		TrustScore:     65,
		VerdictShort:   "Mostly plausible, but verify the mileage.",
		RedFlags:       []string{"No service history mentioned."},
		GreenFlags:     []string{"Detailed photos listed."},
		QuestionsToAsk: []string{"Can you show the service book?"},
	}, nil
}

func (f *FakeAdvisor) PredictCosts(_ context.Context, carModel, _ string) (*advisor.CostForecast, error) {
	return &advisor.CostForecast{
		CarSummary:         carModel,
		AnnualCostEstimate: "150 000 - 250 000 Ft",
		UpcomingMaintenance: []advisor.MaintenanceItem{
			{Item: "Timing belt", DueInKm: "within 20 000 km", EstimatedCost: "90 000 Ft"},
			{Item: "Oil change", DueInKm: "within 10 000 km", EstimatedCost: "30 000 Ft"},
		},
		CommonFaults: []advisor.CommonFault{
			{Fault: "Rear suspension bushings", RiskLevel: "Medium"},
		},
	}, nil
}
