package telegram

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"
)

// Settings 机器人配置
type Settings struct {
	Token  string
	ChatID string
	Client *http.Client
}

type Telegram struct {
	logger   *zap.Logger
	settings Settings
	client   *tele.Bot
	status   func() string
	started  atomic.Bool
}

func NewTelegram(logger *zap.Logger, settings Settings) (*Telegram, error) {
	poller := &tele.LongPoller{Timeout: 10 * time.Second}

	// 只响应配置的会话
	chatID := cast.ToInt64(settings.ChatID)
	chatFilter := tele.NewMiddlewarePoller(poller, func(u *tele.Update) bool {
		if u.Message == nil {
			return true
		}
		return u.Message.Chat != nil && u.Message.Chat.ID == chatID
	})

	client, err := tele.NewBot(tele.Settings{
		ParseMode: tele.ModeMarkdownV2,
		Token:     settings.Token,
		Poller:    chatFilter,
		Client:    settings.Client,
	})
	if err != nil {
		return nil, err
	}

	client.Use(middleware.AutoRespond())

	err = client.SetCommands([]tele.Command{
		{Text: "/start", Description: "启动机器人"},
		{Text: "/help", Description: "获取帮助信息"},
		{Text: "/status", Description: "查看数据任务状态"},
	})
	if err != nil {
		return nil, err
	}

	bot := &Telegram{
		logger:   logger,
		settings: settings,
		client:   client,
	}

	client.Handle("/start", bot.onHelp)
	client.Handle("/help", bot.onHelp)
	client.Handle("/status", bot.onStatus)

	return bot, nil
}

// SetStatus 设置 /status 命令返回的内容
func (r *Telegram) SetStatus(fn func() string) {
	r.status = fn
}

func (r *Telegram) Start() {
	if !r.started.CompareAndSwap(false, true) {
		return
	}
	go r.client.Start()
}

// Stop 未启动时直接返回，否则 telebot 会一直阻塞
func (r *Telegram) Stop() {
	if !r.started.CompareAndSwap(true, false) {
		return
	}
	r.client.Stop()
}

func (r *Telegram) onHelp(c tele.Context) error {
	return c.Send(escapeMarkdownV2("MarketLens notifies this chat when a data refresh finishes.\n/status shows the latest refresh of each job."))
}

func (r *Telegram) onStatus(c tele.Context) error {
	if r.status == nil {
		return c.Send(escapeMarkdownV2("status is not available"))
	}
	return c.Send("```\n" + escapeCode(r.status()) + "\n```")
}

// Notify 向配置的会话发送纯文本消息
func (r *Telegram) Notify(msg string) error {
	_, err := r.client.Send(tele.ChatID(cast.ToInt64(r.settings.ChatID)), escapeMarkdownV2(msg))
	if err != nil {
		r.logger.Warn("telegram notify failed", zap.Error(err))
	}
	return err
}
