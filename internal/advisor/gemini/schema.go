package gemini

import "google.golang.org/genai"

// Response schemas for the structured calls. These mirror the advisor result
// structs field for field; the JSON tags over there are the contract.

var quoteSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"verdict": {
			Type: genai.TypeString,
			Enum: []string{"Fair", "Overpriced", "Suspiciously Low", "Unclear"},
		},
		"marketPriceRange": {
			Type:        genai.TypeString,
			Description: "E.g. 100.000 - 130.000 HUF",
		},
		"summary": {
			Type:        genai.TypeString,
			Description: "Short, one-sentence summary",
		},
		"redFlags": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"advice":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"verdict", "marketPriceRange", "summary", "advice"},
}

var diagnosisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"urgencyLevel": {
			Type: genai.TypeString,
			Enum: []string{"Low", "Medium", "High", "Critical"},
		},
		"estimatedCostRange": {Type: genai.TypeString},
		"possibleCauses": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"cause":       {Type: genai.TypeString},
					"probability": {Type: genai.TypeString},
					"description": {Type: genai.TypeString},
				},
			},
		},
		"nextSteps": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
}

var adSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"trustScore": {
			Type:        genai.TypeInteger,
			Description: "Score between 0 and 100",
		},
		"verdictShort": {
			Type:        genai.TypeString,
			Description: "One punchy headline",
		},
		"redFlags":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "Suspicious signs"},
		"greenFlags": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "Positives"},
		"questionsToAsk": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "What to ask the seller on the phone",
		},
	},
}

var forecastSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"carSummary":         {Type: genai.TypeString},
		"annualCostEstimate": {Type: genai.TypeString},
		"upcomingMaintenance": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"item":          {Type: genai.TypeString},
					"dueInKm":       {Type: genai.TypeString},
					"estimatedCost": {Type: genai.TypeString},
				},
			},
		},
		"commonFaults": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"fault": {Type: genai.TypeString},
					"riskLevel": {
						Type: genai.TypeString,
						Enum: []string{"Low", "Medium", "High"},
					},
				},
			},
		},
	},
}
