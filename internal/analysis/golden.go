package analysis

import (
	"fmt"
	"math"

	"flavorscout/internal/model"
)

// SelectGolden decides the golden candidate for a cycle. A candidate already
// resolved from the model's reply is trusted as-is. Otherwise the
// highest-confidence recommendation with status "selected" wins, first
// occurrence breaking ties, so repeated calls over the same input always
// agree. No selected recommendation is a valid terminal state, not an error.
func SelectGolden(parsed *model.GoldenCandidate, recs []model.FlavorRecommendation) *model.GoldenCandidate {
	if parsed != nil {
		return parsed
	}
	var best *model.FlavorRecommendation
	for i := range recs {
		if recs[i].Status != model.StatusSelected {
			continue
		}
		if best == nil || recs[i].Confidence > best.Confidence {
			best = &recs[i]
		}
	}
	if best == nil {
		return nil
	}
	return &model.GoldenCandidate{
		Recommendation:       *best,
		Rank:                 1,
		TotalMentions:        int(math.Round(float64(best.Confidence) / 4)),
		SentimentScore:       float64(best.Confidence) / 100,
		NegativeMentions:     0,
		MarketGap:            fmt.Sprintf("Strong demand identified for %s in the %s category", best.FlavorName, best.ProductType),
		CompetitiveAdvantage: "First-mover advantage in this flavor segment",
	}
}

// topMentions caps the flavor-mention summary.
const topMentions = 10

// SummarizeMentions derives the flavor-mention summary from the positive
// trend keywords.
func SummarizeMentions(keywords []model.TrendKeyword) []model.FlavorMention {
	out := []model.FlavorMention{}
	for _, kw := range keywords {
		if kw.Sentiment != model.SentimentPositive {
			continue
		}
		out = append(out, model.FlavorMention{
			Flavor:    kw.Text,
			Count:     kw.Value,
			Sentiment: kw.Sentiment,
			Sources:   []string{"News Articles"},
		})
		if len(out) >= topMentions {
			break
		}
	}
	return out
}
