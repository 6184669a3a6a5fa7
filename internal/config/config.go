package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// RedisConfig holds redis connection settings for the upstream fetch cache.
// An empty Addr disables redis; the in-memory fetch cache is used instead.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NewsAPIConfig controls the NewsAPI content source.
type NewsAPIConfig struct {
	APIKey   string   `mapstructure:"api_key"`
	BaseURL  string   `mapstructure:"base_url"`
	Queries  []string `mapstructure:"queries"`   // overrides the built-in query list
	PageSize int      `mapstructure:"page_size"` // per-query result cap
}

// RedditConfig controls the optional Reddit content source. All four
// credentials are required for the source to be enabled.
type RedditConfig struct {
	ClientID     string   `mapstructure:"client_id"`
	ClientSecret string   `mapstructure:"client_secret"`
	Username     string   `mapstructure:"username"`
	Password     string   `mapstructure:"password"`
	Subreddits   []string `mapstructure:"subreddits"`
	Keywords     []string `mapstructure:"keywords"`
}

// Enabled reports whether all Reddit credentials are present.
func (c RedditConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.Username != "" && c.Password != ""
}

// GroqConfig controls the LLM analysis backend (OpenAI-compatible API).
type GroqConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// AnalysisConfig controls pipeline behavior.
type AnalysisConfig struct {
	CharBudget      int    `mapstructure:"char_budget"`      // prompt content budget in chars
	FetchCacheTTL   string `mapstructure:"fetch_cache_ttl"`  // duration string, e.g. "10m"
	RefreshInterval string `mapstructure:"refresh_interval"` // "0" disables the background refresher
	CatalogPath     string `mapstructure:"catalog_path"`     // optional override for the built-in catalog
}

// Config is the top-level configuration structure.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Redis    RedisConfig    `mapstructure:"redis"`
	NewsAPI  NewsAPIConfig  `mapstructure:"newsapi"`
	Reddit   RedditConfig   `mapstructure:"reddit"`
	Groq     GroqConfig     `mapstructure:"groq"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.NewsAPI.BaseURL == "" {
		c.NewsAPI.BaseURL = "https://newsapi.org/v2"
	}
	if c.NewsAPI.PageSize == 0 {
		c.NewsAPI.PageSize = 20
	}
	if c.Groq.Model == "" {
		c.Groq.Model = "llama-3.3-70b-versatile"
	}
	if c.Groq.BaseURL == "" {
		c.Groq.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Analysis.CharBudget == 0 {
		c.Analysis.CharBudget = 25000
	}
	if c.Analysis.FetchCacheTTL == "" {
		c.Analysis.FetchCacheTTL = "10m"
	}
	if c.Analysis.RefreshInterval == "" {
		c.Analysis.RefreshInterval = "0"
	}
}

// MissingCredentials returns the env-style names of required credentials that
// are absent. Reddit is optional and never reported here.
func (c Config) MissingCredentials() []string {
	var missing []string
	if c.NewsAPI.APIKey == "" {
		missing = append(missing, "NEWS_API_KEY")
	}
	if c.Groq.APIKey == "" {
		missing = append(missing, "GROQ_API_KEY")
	}
	return missing
}
