package ai

import (
	"fmt"
	"strings"

	"flavorscout/internal/catalog"
)

// BuildPrompt renders the analysis instructions, the product catalog, and the
// normalized content into the user prompt for the model call.
func BuildPrompt(cat catalog.Catalog, content string) string {
	var b strings.Builder

	b.WriteString("You are a senior product analyst at a leading health and fitness brand. Analyze news and social discussions to discover flavor opportunities.\n\n")

	b.WriteString("CURRENT PRODUCT CATALOG (what we already sell):\n\n")
	for _, brand := range cat.Brands {
		fmt.Fprintf(&b, "%s (%s; audience: %s; style: %s):\n", strings.ToUpper(brand.Name), brand.Positioning, brand.TargetAudience, brand.FlavorStyle)
		for _, p := range brand.Products {
			fmt.Fprintf(&b, "- %s | current: %s | missing: %s | needs promotion: %s\n",
				p.Name,
				strings.Join(p.CurrentFlavors, ", "),
				strings.Join(p.MissingFlavors, ", "),
				strings.Join(p.NeedsPromotion, ", "))
		}
		b.WriteString("\n")
	}

	if len(cat.Competitors) > 0 {
		b.WriteString("COMPETITORS TO WATCH:\n")
		for _, c := range cat.Competitors {
			fmt.Fprintf(&b, "- %s: %s\n", c.Name, strings.Join(c.Flavors, ", "))
		}
		b.WriteString("\n")
	}
	if len(cat.BestSellers) > 0 {
		fmt.Fprintf(&b, "Our best sellers: %s.\n", strings.Join(cat.BestSellers, ", "))
	}
	if len(cat.Underperformers) > 0 {
		fmt.Fprintf(&b, "Underperforming despite being unique: %s.\n", strings.Join(cat.Underperformers, ", "))
	}

	b.WriteString(`
ANALYSIS REQUIREMENTS:
1. TRENDING FLAVOR KEYWORDS: extract SPECIFIC flavor names that are trending (e.g. "Kesar Pista", "Masala Chai", "Salted Caramel"), not generic terms like "protein" or "clean label". Include traditional Indian flavors and modern trends.
2. NEGATIVE MENTIONS: track real complaints about our current flavors (sweetness, artificial taste, texture).
3. FLAVOR RECOMMENDATIONS: minimum 6, at least 2 per brand. Identify catalog gaps, address complaints, include "existingComparison" and "promotionOpportunity" where relevant.
4. GOLDEN CANDIDATE: the single best opportunity, referenced by recommendation id.

OUTPUT FORMAT (JSON only):
{
  "analysisInsights": "Executive summary: which current flavors are loved/hated, what is trending, what competitors do well",
  "trendKeywords": [
    {"text": "SPECIFIC FLAVOR NAME", "value": 15, "sentiment": "positive|negative|neutral", "context": "why this flavor is trending"}
  ],
  "negativeMentions": [
    {"flavor": "our current flavor name", "complaint": "specific user complaint", "frequency": 5, "source": "customer reviews/social media"}
  ],
  "recommendations": [
    {
      "id": "rec-1",
      "flavorName": "Specific Flavor Name",
      "productType": "Exact product (e.g. Biozyme Whey, BCAA, Electrolytes)",
      "targetBrand": "MuscleBlaze|HK Vitals|TrueBasics",
      "confidence": 85,
      "whyItWorks": "one or two sentence explanation",
      "supportingData": ["quote or insight 1", "insight 2"],
      "status": "selected|rejected",
      "rejectionReason": "only if rejected",
      "existingComparison": "how this compares to our current flavors",
      "promotionOpportunity": "if an existing flavor needs better marketing",
      "analysis": {
        "marketDemand": "what is driving demand",
        "competitorGap": "what competitors do not have",
        "consumerPainPoint": "problem being solved",
        "riskFactors": ["risk 1", "risk 2"]
      },
      "negativeFeedback": ["related complaint this addresses"]
    }
  ],
  "goldenCandidate": {
    "recommendationId": "rec-1",
    "totalMentions": 25,
    "sentimentScore": 0.92,
    "negativeMentions": 8,
    "marketGap": "market opportunity description",
    "competitiveAdvantage": "why we should launch this first"
  }
}

CONTENT TO ANALYZE:

`)
	b.WriteString(content)
	return b.String()
}
