package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"flavorscout/internal/model"
)

// defaultInsights is served when the model omits its summary.
const defaultInsights = "Analysis completed based on current market trends and consumer discussions."

// ParseAnalysis maps the model's raw reply into a typed ModelAnalysis. The
// reply is treated as fully untrusted: every field access is defensive and a
// malformed sub-section is defaulted or skipped without affecting the others.
// The only error case is a reply that is not a JSON object at all; that is a
// model-call failure, not a parse failure.
func ParseAnalysis(raw string) (model.ModelAnalysis, error) {
	var top map[string]any
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return model.ModelAnalysis{}, fmt.Errorf("model reply is not valid JSON: %w", err)
	}

	recs := parseRecommendations(top["recommendations"])
	out := model.ModelAnalysis{
		TrendKeywords:    parseTrendKeywords(top["trendKeywords"]),
		Recommendations:  recs,
		GoldenCandidate:  parseGoldenCandidate(top["goldenCandidate"], recs),
		NegativeMentions: parseNegativeMentions(top["negativeMentions"]),
		AnalysisInsights: asStringOr(top["analysisInsights"], defaultInsights),
	}
	return out, nil
}

func parseTrendKeywords(v any) []model.TrendKeyword {
	out := []model.TrendKeyword{}
	for _, raw := range asSlice(v) {
		m := asMap(raw)
		if m == nil {
			continue
		}
		text := strings.TrimSpace(asString(m["text"]))
		if text == "" {
			continue // never defaulted to a placeholder
		}
		out = append(out, model.TrendKeyword{
			Text:      text,
			Value:     asIntOr(m["value"], 1),
			Sentiment: asSentiment(m["sentiment"]),
			Context:   asString(m["context"]),
		})
	}
	return out
}

func parseNegativeMentions(v any) []model.NegativeMention {
	out := []model.NegativeMention{}
	for _, raw := range asSlice(v) {
		m := asMap(raw)
		if m == nil {
			continue
		}
		flavor := strings.TrimSpace(asString(m["flavor"]))
		if flavor == "" {
			continue
		}
		out = append(out, model.NegativeMention{
			Flavor:    flavor,
			Complaint: asString(m["complaint"]),
			Frequency: asIntOr(m["frequency"], 1),
			Source:    asStringOr(m["source"], "Unknown"),
		})
	}
	return out
}

func parseRecommendations(v any) []model.FlavorRecommendation {
	out := []model.FlavorRecommendation{}
	for i, raw := range asSlice(v) {
		m := asMap(raw)
		if m == nil {
			continue
		}
		rec := model.FlavorRecommendation{
			ID:                   asStringOr(m["id"], fmt.Sprintf("rec-%d", i+1)),
			FlavorName:           asStringOr(m["flavorName"], "Unknown Flavor"),
			ProductType:          asStringOr(m["productType"], "Supplement"),
			TargetBrand:          asBrand(m["targetBrand"]),
			Confidence:           asIntOr(m["confidence"], 50),
			WhyItWorks:           asStringOr(m["whyItWorks"], "Based on user discussions"),
			SupportingData:       asStringSlice(m["supportingData"]),
			Status:               asStatus(m["status"]),
			RejectionReason:      asString(m["rejectionReason"]),
			NegativeFeedback:     asStringSliceOrNil(m["negativeFeedback"]),
			ExistingComparison:   asString(m["existingComparison"]),
			PromotionOpportunity: asString(m["promotionOpportunity"]),
		}
		if am := asMap(m["analysis"]); am != nil {
			rec.Analysis = &model.FlavorAnalysis{
				MarketDemand:      asString(am["marketDemand"]),
				CompetitorGap:     asString(am["competitorGap"]),
				ConsumerPainPoint: asString(am["consumerPainPoint"]),
				SeasonalRelevance: asString(am["seasonalRelevance"]),
				RiskFactors:       asStringSlice(am["riskFactors"]),
			}
		}
		out = append(out, rec)
	}
	return out
}

// parseGoldenCandidate only builds a candidate when the model named a
// recommendationId that resolves against the parsed recommendations.
// Deterministic fallback selection lives in the analysis package, keeping
// this mapping side-effect free.
func parseGoldenCandidate(v any, recs []model.FlavorRecommendation) *model.GoldenCandidate {
	m := asMap(v)
	if m == nil {
		return nil
	}
	refID := asString(m["recommendationId"])
	if refID == "" {
		return nil
	}
	var ref *model.FlavorRecommendation
	for i := range recs {
		if recs[i].ID == refID {
			ref = &recs[i]
			break
		}
	}
	if ref == nil {
		return nil
	}
	return &model.GoldenCandidate{
		Recommendation:       *ref,
		Rank:                 1,
		TotalMentions:        asIntOr(m["totalMentions"], 10),
		SentimentScore:       asFloatOr(m["sentimentScore"], 0.8),
		NegativeMentions:     asIntOr(m["negativeMentions"], 0),
		MarketGap:            asStringOr(m["marketGap"], "Strong market opportunity identified"),
		CompetitiveAdvantage: asStringOr(m["competitiveAdvantage"], "First-mover advantage in emerging flavor segment"),
	}
}

// --- defensive accessors ---

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == math.Trunc(t) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case bool:
		return fmt.Sprintf("%v", t)
	default:
		return ""
	}
}

func asStringOr(v any, def string) string {
	if s := asString(v); s != "" {
		return s
	}
	return def
}

func asIntOr(v any, def int) int {
	if f, ok := v.(float64); ok {
		return int(math.Round(f))
	}
	return def
}

func asFloatOr(v any, def float64) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return def
}

func asStringSlice(v any) []string {
	out := []string{}
	for _, e := range asSlice(v) {
		if s := asString(e); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// asStringSliceOrNil keeps nil for absent optional lists so they are omitted
// from the JSON payload.
func asStringSliceOrNil(v any) []string {
	if asSlice(v) == nil {
		return nil
	}
	return asStringSlice(v)
}

func asSentiment(v any) string {
	switch asString(v) {
	case model.SentimentPositive:
		return model.SentimentPositive
	case model.SentimentNegative:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

func asStatus(v any) string {
	if asString(v) == model.StatusRejected {
		return model.StatusRejected
	}
	return model.StatusSelected
}

func asBrand(v any) string {
	if s := asString(v); model.ValidBrand(s) {
		return s
	}
	return model.Brands[0]
}
