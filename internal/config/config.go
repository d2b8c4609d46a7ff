package config

import "os"

// 环境变量，优先级高于配置文件
const (
	EnvFredAPIKey = "FRED_API_KEY"
	EnvJWTSecret  = "MARKETLENS_JWT_SECRET"
)

type Config struct {
	Auth      AuthConf      `json:"auth"`
	Reporting ReportingConf `json:"reporting"`
	Scoring   ScoringConf   `json:"scoring"`
	Engine    EngineConf    `json:"engine"`
	Binance   BinanceConf   `json:"binance"`
	Telegram  TelegramConf  `json:"telegram"`
	LLM       LlmConf       `json:"llm"`
	Trace     TraceConf     `json:"trace"`
}

type AuthConf struct {
	JWTSecret string `json:"jwt_secret"` // 身份提供方签发令牌使用的 HMAC 密钥
	Issuer    string `json:"issuer"`     // 为空时不校验签发者
}

type ReportingConf struct {
	Timezone    string `json:"timezone"`     // 日历分组时区，默认 UTC
	RecentLimit int    `json:"recent_limit"` // 最近交易条数，默认5
}

type ScoringConf struct {
	CacheTTLMinutes int `json:"cache_ttl_minutes"` // 市场数据缓存时间，默认60
	ScannerWorkers  int `json:"scanner_workers"`   // 扫描并发数，默认4
}

type EngineConf struct {
	Enabled           bool    `json:"enabled"`             // 是否启用定时刷新
	CotCron           string  `json:"cot_cron"`            // 例如: 0 6 * * 6
	SeasonalityCron   string  `json:"seasonality_cron"`    // 例如: 0 5 1 * *
	EconomicCron      string  `json:"economic_cron"`       // 例如: 0 7 * * *
	FredAPIKey        string  `json:"fred_api_key"`        // FRED API密钥
	RequestsPerSecond float64 `json:"requests_per_second"` // 外部数据源限速，默认2
	SeasonalityYears  int     `json:"seasonality_years"`   // 季节性统计年数，默认15
	ProxyURL          string  `json:"proxy_url"`           // 代理地址，例如: http://127.0.0.1:7890
}

type BinanceConf struct {
	APIKey   string `json:"api_key"`
	Secret   string `json:"secret"`
	ProxyURL string `json:"proxy_url"`
}

type TelegramConf struct {
	Enabled bool   `json:"enabled"`
	Token   string `json:"token"`
	ChatID  string `json:"chat_id"`
}

type LlmConf struct {
	Provider string `json:"provider"`  // openai 或 gemini
	BaseURL  string `json:"base_url"`  // LLM API基础URL
	APIKey   string `json:"api_key"`   // LLM API密钥
	Model    string `json:"model"`     // 模型名称
	ProxyURL string `json:"proxy_url"` // 代理地址
}

type TraceConf struct {
	Enabled bool `json:"enabled"`
}

// ApplyEnv 用环境变量覆盖密钥类配置
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvFredAPIKey); v != "" {
		c.Engine.FredAPIKey = v
	}
	if v := os.Getenv(EnvJWTSecret); v != "" {
		c.Auth.JWTSecret = v
	}
}
