package model

// ContentItem is a single fetched article or post. Identity is OriginURL:
// two items with the same origin are the same entity.
type ContentItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Body         string `json:"body"`
	SourceName   string `json:"source_name"`
	AuthorName   string `json:"author_name"`
	PublishedAt  int64  `json:"published_at"` // epoch seconds
	OriginURL    string `json:"origin_url"`
	Engagement   int    `json:"engagement_score"`
	CommentCount int    `json:"comment_count"`
}

// ContentExcerpt is a supplementary text fragment (a comment, or a slice of
// article body) that feeds the analysis alongside the items.
type ContentExcerpt struct {
	ID          string `json:"id"`
	Body        string `json:"body"`
	AuthorName  string `json:"author_name"`
	PublishedAt int64  `json:"published_at"`
}

// Sentiment values accepted from the model. Anything else is normalized to
// SentimentNeutral during parsing.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Recommendation status values. Anything else defaults to StatusSelected.
const (
	StatusSelected = "selected"
	StatusRejected = "rejected"
)

// Brands ordered by precedence; the first entry is the default when the model
// returns an unknown or missing target brand.
var Brands = []string{"MuscleBlaze", "HK Vitals", "TrueBasics"}

// ValidBrand reports whether b is one of the enumerated brands.
func ValidBrand(b string) bool {
	for _, known := range Brands {
		if b == known {
			return true
		}
	}
	return false
}

// TrendKeyword is a single trending flavor keyword extracted by the model.
type TrendKeyword struct {
	Text      string `json:"text"`
	Value     int    `json:"value"`
	Sentiment string `json:"sentiment"`
	Context   string `json:"context,omitempty"`
}

// FlavorMention summarizes a positively trending keyword for display.
type FlavorMention struct {
	Flavor    string   `json:"flavor"`
	Count     int      `json:"count"`
	Sentiment string   `json:"sentiment"`
	Sources   []string `json:"sources"`
}

// NegativeMention tracks a consumer complaint about a current flavor.
type NegativeMention struct {
	Flavor    string `json:"flavor"`
	Complaint string `json:"complaint"`
	Frequency int    `json:"frequency"`
	Source    string `json:"source"`
}

// FlavorAnalysis is the optional detailed breakdown attached to a
// recommendation.
type FlavorAnalysis struct {
	MarketDemand      string   `json:"marketDemand"`
	CompetitorGap     string   `json:"competitorGap"`
	ConsumerPainPoint string   `json:"consumerPainPoint"`
	SeasonalRelevance string   `json:"seasonalRelevance,omitempty"`
	RiskFactors       []string `json:"riskFactors"`
}

// FlavorRecommendation is one flavor opportunity proposed by the model.
// IDs come from the model and are untrusted; missing ids are synthesized
// positionally during parsing.
type FlavorRecommendation struct {
	ID                   string          `json:"id"`
	FlavorName           string          `json:"flavorName"`
	ProductType          string          `json:"productType"`
	TargetBrand          string          `json:"targetBrand"`
	Confidence           int             `json:"confidence"`
	WhyItWorks           string          `json:"whyItWorks"`
	SupportingData       []string        `json:"supportingData"`
	Status               string          `json:"status"`
	RejectionReason      string          `json:"rejectionReason,omitempty"`
	Analysis             *FlavorAnalysis `json:"analysis,omitempty"`
	NegativeFeedback     []string        `json:"negativeFeedback,omitempty"`
	ExistingComparison   string          `json:"existingComparison,omitempty"`
	PromotionOpportunity string          `json:"promotionOpportunity,omitempty"`
}

// GoldenCandidate is the single best opportunity of an analysis cycle. The
// recommendation is held by value so the candidate never dangles.
type GoldenCandidate struct {
	Recommendation       FlavorRecommendation `json:"recommendation"`
	Rank                 int                  `json:"rank"`
	TotalMentions        int                  `json:"totalMentions"`
	SentimentScore       float64              `json:"sentimentScore"`
	NegativeMentions     int                  `json:"negativeMentions"`
	MarketGap            string               `json:"marketGap"`
	CompetitiveAdvantage string               `json:"competitiveAdvantage"`
}

// ModelAnalysis is the typed, default-filled form of the model's JSON reply,
// before golden-candidate fallback and mention summarization.
type ModelAnalysis struct {
	TrendKeywords    []TrendKeyword
	Recommendations  []FlavorRecommendation
	GoldenCandidate  *GoldenCandidate
	NegativeMentions []NegativeMention
	AnalysisInsights string
}

// CacheInfo describes how a response relates to the caches: whether the
// upstream fetch was served from the fetch cache, and whether the whole
// response is a stale fallback.
type CacheInfo struct {
	UsedCache       bool   `json:"usedCache"`
	CacheAgeSeconds int    `json:"cacheAgeSeconds"`
	TotalAPIFetches int64  `json:"totalApiFetches"`
	IsFallback      bool   `json:"isFallback"`
	FallbackReason  string `json:"fallbackReason,omitempty"`
}

// AnalysisResult is the full payload served to callers. It is built fresh
// each cycle and never mutated afterwards.
type AnalysisResult struct {
	TrendKeywords    []TrendKeyword         `json:"trendKeywords"`
	FlavorMentions   []FlavorMention        `json:"flavorMentions"`
	Recommendations  []FlavorRecommendation `json:"recommendations"`
	GoldenCandidate  *GoldenCandidate       `json:"goldenCandidate"`
	NegativeMentions []NegativeMention      `json:"negativeMentions"`
	RawItemCount     int                    `json:"rawPostCount"`
	AnalyzedAt       string                 `json:"analyzedAt"` // ISO-8601
	AnalysisInsights string                 `json:"analysisInsights,omitempty"`
	CacheInfo        CacheInfo              `json:"cacheInfo"`
}
