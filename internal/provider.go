package internal

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/catalog"
	"github.com/AntonioEsper/MarketLens/internal/config"
	"github.com/AntonioEsper/MarketLens/internal/engine"
	"github.com/AntonioEsper/MarketLens/internal/repo"
	"github.com/AntonioEsper/MarketLens/internal/service"
	"github.com/AntonioEsper/MarketLens/internal/telegram"
	"github.com/AntonioEsper/MarketLens/internal/trace"
	"github.com/AntonioEsper/MarketLens/pkg/feed"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
	"google.golang.org/genai"
	"gorm.io/gorm"
)

const (
	telegramHTTPTimeout      = 10 * time.Second
	llmHTTPTimeout           = 2 * time.Minute
	defaultRequestsPerSecond = 2
	logFieldConfiguredModel  = "model"
)

func provideCatalog() (*catalog.Catalog, error) {
	return catalog.Default()
}

func provideTracer(conf *config.Config) (*trace.Tracer, error) {
	return trace.New(conf.Trace.Enabled)
}

// provideJSONClient 外部数据源共用的限速客户端
func provideJSONClient(conf *config.Config) (*feed.JSONClient, error) {
	rps := conf.Engine.RequestsPerSecond
	if rps == 0 {
		rps = defaultRequestsPerSecond
	}
	return feed.NewJSONClient(rps, conf.Engine.ProxyURL)
}

func provideYahooClient(client *feed.JSONClient) *feed.YahooClient {
	return feed.NewYahooClient(client)
}

func provideCftcClient(client *feed.JSONClient) *feed.CftcClient {
	return feed.NewCftcClient(client)
}

func provideFredClient(client *feed.JSONClient, conf *config.Config, logger *zap.Logger) *feed.FredClient {
	if conf.Engine.FredAPIKey == "" {
		logger.Warn("FRED API key not configured; economic refresh will fail")
	}
	return feed.NewFredClient(client, conf.Engine.FredAPIKey)
}

// provideBinanceClient provides Binance client
func provideBinanceClient(conf *config.Config, logger *zap.Logger) *feed.BinanceClient {
	client := feed.NewBinanceClient(conf.Binance.APIKey, conf.Binance.Secret, conf.Binance.ProxyURL)
	logger.Info("Binance client initialized",
		zap.Bool("has_credentials", conf.Binance.APIKey != "" && conf.Binance.Secret != ""))
	return client
}

func llmHTTPClient(proxyURL string, logger *zap.Logger) *http.Client {
	httpClient := &http.Client{Timeout: llmHTTPTimeout}
	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			logger.Fatal("failed to parse proxy URL", zap.Error(err))
		}
		httpClient.Transport = &http.Transport{Proxy: http.ProxyURL(u)}
	}
	return httpClient
}

// provideCompleter 按配置创建大模型客户端，未配置时返回 nil
func provideCompleter(conf *config.Config, logger *zap.Logger) (service.Completer, error) {
	llm := conf.LLM
	if llm.APIKey == "" || llm.Model == "" {
		logger.Info("LLM not configured; report review disabled")
		return nil, nil
	}

	switch llm.Provider {
	case service.LLMProviderGemini:
		client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:     llm.APIKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: llmHTTPClient(llm.ProxyURL, logger),
		})
		if err != nil {
			return nil, err
		}
		logger.Info("Gemini client initialized", zap.String(logFieldConfiguredModel, llm.Model))
		return service.NewGeminiCompleter(client, llm.Model), nil
	default:
		options := []option.RequestOption{
			option.WithAPIKey(llm.APIKey),
			option.WithHTTPClient(llmHTTPClient(llm.ProxyURL, logger)),
		}
		if llm.BaseURL != "" {
			options = append(options, option.WithBaseURL(llm.BaseURL))
		}
		client := openai.NewClient(options...)
		logger.Info("OpenAI client initialized",
			zap.String(logFieldConfiguredModel, llm.Model),
			zap.String("provider", service.LLMProviderOpenAI))
		return service.NewOpenAICompleter(&client, llm.Model), nil
	}
}

// provideTelegram provides telegram instance
func provideTelegram(logger *zap.Logger, conf *config.Config) *telegram.Telegram {
	if !conf.Telegram.Enabled {
		return nil
	}

	tg, err := telegram.NewTelegram(logger, telegram.Settings{
		Token:  conf.Telegram.Token,
		ChatID: conf.Telegram.ChatID,
		Client: &http.Client{Timeout: telegramHTTPTimeout},
	})
	if err != nil {
		logger.Error("failed to init telegram", zap.Error(err))
		return nil
	}

	return tg
}

func provideNotifier(tg *telegram.Telegram) engine.Notifier {
	if tg == nil {
		return nil
	}
	return tg
}

func provideInvalidator(marketService *service.MarketService) engine.Invalidator {
	return marketService
}

func provideJobs(
	db *gorm.DB,
	cat *catalog.Catalog,
	cftc *feed.CftcClient,
	fred *feed.FredClient,
	prices *service.PriceService,
	conf *config.Config,
) []engine.Job {
	return []engine.Job{
		engine.NewCotJob(cat, cftc, repo.NewCotReportRepo(db)),
		engine.NewSeasonalityJob(cat, prices, repo.NewSeasonalityStatRepo(db), conf.Engine.SeasonalityYears),
		engine.NewEconomicJob(cat, fred, repo.NewEconomicObservationRepo(db), conf.Engine.FredAPIKey != ""),
	}
}
