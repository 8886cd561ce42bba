package bot

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"FiberTrack/bot/form"
	"FiberTrack/bot/form/telegram"
	"FiberTrack/entity"
	"FiberTrack/internal/lib/sl"
	"FiberTrack/internal/service/job"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/message"
)

// Callback data prefixes used by the worker bot keyboards.
const (
	CallbackSelectSite        = "SELECT_SITE:"
	CallbackSelectAppointment = "SELECT_APPOINTMENT:"
)

// UserService is the worker registry as seen by the bot.
type UserService interface {
	Register(ctx context.Context, telegramChatID, name string) (*entity.User, error)
	GetByTelegramID(ctx context.Context, telegramChatID string) (*entity.User, error)
	DailyProgram(ctx context.Context, userID string) ([]entity.Site, error)
}

// JobService answers appointment-by-date queries.
type JobService interface {
	AppointmentsByDate(ctx context.Context, dateStr, role string) ([]entity.Job, error)
}

// TgBot is the Telegram bot field workers use to receive tasks and fill
// in reports.
type TgBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	botUsername string
	token       string
	messenger   *telegram.Messenger
	engine      *form.Engine
	users       UserService
	jobs        JobService
}

func NewTgBot(botName, apiKey string, log *slog.Logger) (*TgBot, error) {
	tgBot := &TgBot{
		log:         log.With(sl.Module("tgbot")),
		botUsername: botName,
		token:       apiKey,
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	tgBot.api = api
	tgBot.messenger = telegram.NewMessenger(api)

	return tgBot, nil
}

// SetFormEngine sets the conversational form engine.
func (t *TgBot) SetFormEngine(engine *form.Engine) {
	t.engine = engine
}

// SetUserService sets the worker registry.
func (t *TgBot) SetUserService(users UserService) {
	t.users = users
}

// SetJobService sets the appointment lookup service.
func (t *TgBot) SetJobService(jobs JobService) {
	t.jobs = jobs
}

// Start begins polling for updates and handling them.
func (t *TgBot) Start() error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		// If an error is returned by a handler, log it and continue going.
		Error: func(b *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Println("an error occurred while handling update:", err.Error())
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updater := ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewCommand("start", t.handleStart))
	dispatcher.AddHandler(handlers.NewCommand("today", t.handleToday))
	dispatcher.AddHandler(handlers.NewCommand("resume", t.handleResume))
	dispatcher.AddHandler(handlers.NewCommand("skip", t.handleSkip))
	dispatcher.AddHandler(handlers.NewCommand("cancel", t.handleCancel))
	dispatcher.AddHandler(handlers.NewCallback(t.callbackFilter, t.handleCallback))
	dispatcher.AddHandler(handlers.NewMessage(message.Photo, t.handlePhoto))
	dispatcher.AddHandler(handlers.NewMessage(message.Text, t.handleMessage))

	// Start receiving updates.
	err := updater.StartPolling(t.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}

	t.log.Info("worker bot started", slog.String("username", t.botUsername))

	// Idle, to keep updates coming in, and avoid bot stopping.
	updater.Idle()

	return nil
}

// PhotoURL resolves a Telegram file id to its download URL. The URL is
// valid for roughly an hour, so callers should not persist it.
func (t *TgBot) PhotoURL(fileID string) (string, error) {
	f, err := t.api.GetFile(fileID, nil)
	if err != nil {
		return "", fmt.Errorf("getting file info: %w", err)
	}
	return fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", t.token, f.FilePath), nil
}

func (t *TgBot) callbackFilter(cq *tgbotapi.CallbackQuery) bool {
	return strings.HasPrefix(cq.Data, CallbackSelectSite) ||
		strings.HasPrefix(cq.Data, CallbackSelectAppointment) ||
		strings.HasPrefix(cq.Data, form.CallbackAnswer)
}

func (t *TgBot) handleStart(bot *tgbotapi.Bot, ctx *ext.Context) error {
	chatID := strconv.FormatInt(ctx.EffectiveChat.Id, 10)
	name := strings.TrimSpace(ctx.EffectiveUser.FirstName + " " + ctx.EffectiveUser.LastName)

	user, err := t.users.Register(context.Background(), chatID, name)
	if err != nil {
		t.log.Error("register user", slog.String("chat_id", chatID), sl.Err(err))
		return t.messenger.SendText(chatID, "Registration failed. Please try again later.")
	}

	msg := fmt.Sprintf("Welcome %s! You are registered as %s. Type /today to see your daily program.",
		user.Name, user.Role)
	return t.messenger.SendText(chatID, msg)
}

func (t *TgBot) handleToday(bot *tgbotapi.Bot, ctx *ext.Context) error {
	chatID := strconv.FormatInt(ctx.EffectiveChat.Id, 10)

	user, err := t.users.GetByTelegramID(context.Background(), chatID)
	if err != nil {
		t.log.Error("lookup user", slog.String("chat_id", chatID), sl.Err(err))
		return err
	}
	if user == nil {
		return t.messenger.SendText(chatID, "Please register first with /start.")
	}
	if !user.IsWorker() {
		return t.messenger.SendText(chatID, "Your registration is pending approval. An admin will assign your role.")
	}

	sites, err := t.users.DailyProgram(context.Background(), user.UserID)
	if err != nil {
		t.log.Error("daily program", slog.String("user_id", user.UserID), sl.Err(err))
		return err
	}
	if len(sites) == 0 {
		return t.messenger.SendText(chatID, "No pending tasks for today! 🎉")
	}

	buttons := make([]form.InlineButton, len(sites))
	for i, s := range sites {
		buttons[i] = form.InlineButton{
			Text: fmt.Sprintf("%s (%s)", s.Address, s.SiteID),
			Data: CallbackSelectSite + s.SiteID,
		}
	}
	return t.messenger.SendInlineOptions(chatID, "📋 Your tasks for today:", buttons)
}

func (t *TgBot) handleResume(bot *tgbotapi.Bot, ctx *ext.Context) error {
	chatID := strconv.FormatInt(ctx.EffectiveChat.Id, 10)
	return t.engine.Resume(context.Background(), t.messenger, chatID)
}

func (t *TgBot) handleSkip(bot *tgbotapi.Bot, ctx *ext.Context) error {
	chatID := strconv.FormatInt(ctx.EffectiveChat.Id, 10)
	return t.engine.Skip(context.Background(), t.messenger, chatID)
}

func (t *TgBot) handleCancel(bot *tgbotapi.Bot, ctx *ext.Context) error {
	chatID := strconv.FormatInt(ctx.EffectiveChat.Id, 10)
	return t.engine.Cancel(context.Background(), t.messenger, chatID)
}

func (t *TgBot) handleCallback(bot *tgbotapi.Bot, ctx *ext.Context) error {
	chatID := strconv.FormatInt(ctx.EffectiveChat.Id, 10)
	data := ctx.CallbackQuery.Data

	// Acknowledge so the client stops the loading spinner.
	if _, err := ctx.CallbackQuery.Answer(bot, nil); err != nil {
		t.log.Warn("answer callback", slog.String("chat_id", chatID), sl.Err(err))
	}

	switch {
	case strings.HasPrefix(data, form.CallbackAnswer):
		value := strings.TrimPrefix(data, form.CallbackAnswer)
		return t.engine.HandleChoice(context.Background(), t.messenger, chatID, value)

	case strings.HasPrefix(data, CallbackSelectSite):
		siteID := strings.TrimPrefix(data, CallbackSelectSite)
		return t.startForm(chatID, siteID)

	case strings.HasPrefix(data, CallbackSelectAppointment):
		srID := strings.TrimPrefix(data, CallbackSelectAppointment)
		return t.startForm(chatID, srID)
	}
	return nil
}

// startForm resolves the worker behind a chat and opens their role's form
// for the selected site.
func (t *TgBot) startForm(chatID, siteID string) error {
	user, err := t.users.GetByTelegramID(context.Background(), chatID)
	if err != nil {
		return fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return t.messenger.SendText(chatID, "Please register first with /start.")
	}

	return t.engine.Start(context.Background(), t.messenger, chatID, siteID, user.UserID, user.Role)
}

func (t *TgBot) handlePhoto(bot *tgbotapi.Bot, ctx *ext.Context) error {
	chatID := strconv.FormatInt(ctx.EffectiveChat.Id, 10)

	photos := ctx.EffectiveMessage.Photo
	if len(photos) == 0 {
		return nil
	}
	// Telegram sends multiple resolutions, the last one is the largest.
	fileID := photos[len(photos)-1].FileId

	return t.engine.HandlePhoto(context.Background(), t.messenger, chatID, fileID)
}

func (t *TgBot) handleMessage(bot *tgbotapi.Bot, ctx *ext.Context) error {
	chatID := strconv.FormatInt(ctx.EffectiveChat.Id, 10)
	text := ctx.EffectiveMessage.Text
	if strings.HasPrefix(text, "/") {
		return nil
	}

	handled, err := t.engine.HandleText(context.Background(), t.messenger, chatID, text)
	if err != nil {
		return err
	}
	if handled {
		return nil
	}

	if job.IsDateQuery(text) {
		return t.handleDateQuery(chatID, text)
	}

	return t.messenger.SendText(chatID, "Type /today to see your tasks, or send a date (DD/MM/YYYY) to list appointments.")
}

func (t *TgBot) handleDateQuery(chatID, text string) error {
	user, err := t.users.GetByTelegramID(context.Background(), chatID)
	if err != nil {
		return fmt.Errorf("looking up user: %w", err)
	}
	if user == nil || !user.IsWorker() {
		return t.messenger.SendText(chatID, "Please register first with /start.")
	}

	appts, err := t.jobs.AppointmentsByDate(context.Background(), text, user.Role)
	if err != nil {
		t.log.Error("appointments by date", slog.String("date", text), sl.Err(err))
		return t.messenger.SendText(chatID, "Could not read appointments. Please try again later.")
	}
	if len(appts) == 0 {
		return t.messenger.SendText(chatID, fmt.Sprintf("No appointments found for %s.", text))
	}

	buttons := make([]form.InlineButton, len(appts))
	for i, a := range appts {
		label := a.Address
		if a.AppointmentTime != "" {
			label = fmt.Sprintf("%s %s", a.AppointmentTime, a.Address)
		}
		buttons[i] = form.InlineButton{
			Text: label,
			Data: CallbackSelectAppointment + a.SrID,
		}
	}
	return t.messenger.SendInlineOptions(chatID, fmt.Sprintf("📅 Appointments for %s:", text), buttons)
}
