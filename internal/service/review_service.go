package service

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/repo"
	"github.com/AntonioEsper/MarketLens/internal/reporting"
	"github.com/AntonioEsper/MarketLens/internal/xe"
	"github.com/AntonioEsper/MarketLens/pkg/nostd"
	"github.com/valyala/fasttemplate"
	"go.uber.org/zap"
)

//go:embed templates/review_instructions.txt
var reviewInstructionsTemplate string

//go:embed templates/review_prompt.txt
var reviewPromptTemplate string

// ReviewService 使用大模型点评交易业绩
type ReviewService struct {
	logger *zap.Logger

	reports   *ReportService
	profiles  *ProfileService
	completer Completer
}

// NewReviewService 创建点评服务，completer 为 nil 表示未配置大模型
func NewReviewService(reports *ReportService, profiles *ProfileService, completer Completer, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		logger:    logger,
		reports:   reports,
		profiles:  profiles,
		completer: completer,
	}
}

// ReviewRequest 点评参数
type ReviewRequest struct {
	repo.TradeFilter
	Horizon  string `query:"horizon" validate:"omitempty,oneof=week month"`
	Language string `query:"language" validate:"max=20"`
}

// Review 大模型点评结果
type Review struct {
	Model       string    `json:"model"`
	Content     string    `json:"content"`
	TotalTrades int       `json:"total_trades"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *ReviewService) Review(ctx context.Context, userID string, req ReviewRequest) (*Review, error) {
	if s.completer == nil {
		return nil, xe.ErrNotSupport
	}
	report, err := s.reports.Dashboard(ctx, userID, req.TradeFilter)
	if err != nil {
		return nil, err
	}
	if !report.HasData {
		return nil, fmt.Errorf("%w: no finalized trades to review", xe.ErrInvalidParams)
	}

	currency := ""
	if profile, err := s.profiles.Get(ctx, userID); err == nil {
		currency = profile.BaseCurrency
	}
	if currency == "" && len(report.Recent) > 0 {
		currency = report.Recent[0].Trade.Currency
	}

	instructions := BuildReviewInstructions(req.Horizon, req.Language)
	prompt := BuildReviewPrompt(report, currency)

	start := time.Now()
	content, err := s.completer.Complete(ctx, instructions, prompt)
	if err != nil {
		s.logger.Error("failed to generate review", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("review generated",
		zap.String("user_id", userID),
		zap.String("model", s.completer.Model()),
		zap.Duration("elapsed", time.Since(start)))

	return &Review{
		Model:       s.completer.Model(),
		Content:     content,
		TotalTrades: report.TotalTrades,
		CreatedAt:   time.Now(),
	}, nil
}

// BuildReviewInstructions 生成系统指令
func BuildReviewInstructions(horizon, language string) string {
	if horizon == "" {
		horizon = "week"
	}
	if language == "" {
		language = "English"
	}
	tmpl := fasttemplate.New(reviewInstructionsTemplate, "{{", "}}")
	return tmpl.ExecuteString(map[string]interface{}{
		"horizon":  horizon,
		"language": language,
	})
}

// BuildReviewPrompt 将业绩报告整理为提示词
func BuildReviewPrompt(report *reporting.Report, currency string) string {
	money := func(v float64) string { return nostd.FormatMoney(v, currency) }

	replacements := map[string]interface{}{
		"total_trades":    fmt.Sprintf("%d", report.TotalTrades),
		"wins":            fmt.Sprintf("%d", report.Wins),
		"losses":          fmt.Sprintf("%d", report.Losses),
		"win_rate":        nostd.FormatPercent(report.WinRate),
		"total_pnl":       money(report.TotalPnL),
		"avg_win":         money(report.AvgWin),
		"avg_loss":        money(report.AvgLoss),
		"avg_risk_reward": nostd.FormatRatio(report.AvgRiskReward),
		"expectancy":      money(report.Expectancy),
		"profit_factor":   fmt.Sprintf("%.2f", report.ProfitFactor),
		"max_drawdown":    money(report.MaxDrawdown),
		"quality_score":   fmt.Sprintf("%.1f / 100", report.Quality.Score),
		"week_to_date":    money(report.Period.WeekToDate),
		"month_to_date":   money(report.Period.MonthToDate),
		"year_to_date":    money(report.Period.YearToDate),
	}

	var weekdays strings.Builder
	for _, d := range report.Weekdays.Days {
		if d.Trades == 0 {
			continue
		}
		fmt.Fprintf(&weekdays, "- %s: %s over %d trades\n", d.Name, money(d.PnL), d.Trades)
	}
	replacements["weekdays"] = orNone(weekdays.String())
	replacements["assets"] = orNone(formatBreakdown(report.Assets, money))
	replacements["setups"] = orNone(formatBreakdown(report.Setups, money))

	var recent strings.Builder
	for _, r := range report.Recent {
		fmt.Fprintf(&recent, "- %s %s %s: %.2fR (%s)\n",
			r.Trade.TradedAt.Format(time.DateOnly), r.Trade.Direction, r.Trade.Asset,
			r.Outcome.RMultiple, money(r.Outcome.PnL))
	}
	replacements["recent"] = orNone(recent.String())

	tmpl := fasttemplate.New(reviewPromptTemplate, "{{", "}}")
	return tmpl.ExecuteString(replacements)
}

func formatBreakdown(rows []reporting.Breakdown, money func(float64) string) string {
	var sb strings.Builder
	for _, b := range rows {
		fmt.Fprintf(&sb, "- %s: %d trades, win rate %s, P&L %s\n", b.Key, b.Trades, nostd.FormatPercent(b.WinRate), money(b.PnL))
	}
	return sb.String()
}

func orNone(s string) string {
	if s == "" {
		return "- none\n"
	}
	return s
}
