package advisor

import "fmt"

// mechanicPromptTemplate is the producer contract for the mechanic search.
// The recommend package depends on the shape promised here: a bare bullet
// list, one entry per shop, rationale and tagged lines inside a blockquote,
// fields tagged with the four marker glyphs, missing data omitted rather
// than filled with placeholders, and the list pre-sorted best-first.
const mechanicPromptTemplate = `I am looking for a trustworthy car mechanic near me.
My car's problem: %q.

Find 3-5 highly rated repair shops within %d km of my location.

SORTING RULE (IMPORTANT):
Sort the list strictly DESCENDING by trust: rating stars AND review count
combined (a 4.9-star shop with 500 reviews outranks a 5.0-star shop with 10).
The best match must come first.

FORMAT INSTRUCTIONS (CRITICAL):
1. Respond with NOTHING but a Markdown list. No preamble.
2. Every entry must follow EXACTLY this structure:

   * **Shop Name**
     > [Why you recommend this shop...]
     >
     > 📍 [Exact address]
     > 📞 [Phone number]
     > 🌐 [Website URL]
     > 🗺️ [Google Maps URL]

DATA RULES (STRICT):
1. If a piece of data (e.g. phone or website) is NOT available, OMIT THE
   WHOLE LINE. Never write placeholders like "N/A".
2. The address and the map link are mandatory (use the tool output).
3. Lines start with the emoji tags only (📍, 📞, 🌐, 🗺️).`

func (q MechanicQuery) Prompt() string {
	return fmt.Sprintf(mechanicPromptTemplate, q.Problem, q.RadiusKm)
}

const quotePromptTemplate = `You are a car repair pricing expert. Analyze this quote.
%s
Work description: %s
Quoted price: %s HUF

Use Hungarian market prices and account for the specific car's parts prices
and service needs. If mileage is given, judge whether this repair is
plausible at that mileage (e.g. timing service intervals).`

func (r QuoteRequest) Prompt() string {
	carContext := "Car: not specified (use general market prices)"
	if r.CarDetails != "" {
		carContext = "Car details: " + r.CarDetails
		if r.Mileage != "" {
			carContext += ", mileage: " + r.Mileage + " km"
		}
	}
	return fmt.Sprintf(quotePromptTemplate, carContext, r.Description, r.PriceHUF)
}

const diagnosisPromptTemplate = `You are a car mechanic. Diagnose the fault from this description.
Description: %s`

func (r DiagnosisRequest) Prompt() string {
	return fmt.Sprintf(diagnosisPromptTemplate, r.Description)
}

const adPromptTemplate = `You are a used-car trade expert. Analyze this classified ad.
Text: %q

Judge strictly. Look for signs of hidden defects.`

func AdPrompt(adText string) string {
	return fmt.Sprintf(adPromptTemplate, adText)
}

const predictPromptTemplate = `You are a car maintenance cost expert.
Model: %s
Mileage: %s km

Give a concrete forecast.`

func PredictPrompt(carModel, mileage string) string {
	return fmt.Sprintf(predictPromptTemplate, carModel, mileage)
}
