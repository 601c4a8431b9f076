package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"eco-actions/internal/client"
	"eco-actions/internal/model"
)

const (
	menuLabelActions    = "Показать акции 🌳"
	menuLabelPropose    = "Предложить акцию 💡"
	menuLabelMyDetails  = "Мои данные 👤"
	menuLabelStatistics = "Статистика 📊"
	menuLabelTips       = "Советы 💡"
	btnCancelDialog     = "⏪ Отменить ввод"

	cbRegisterPrefix = "register:"

	replyTryLater   = "😔 Не удалось получить данные. Попробуйте /start ещё раз."
	replyFlowActive = "⏳ Сначала завершите текущий ввод или нажмите «⏪ Отменить ввод»."
)

// apiClient is the slice of the API client the bot needs. Tests substitute a
// mock here.
type apiClient interface {
	ListActions(ctx context.Context) ([]model.Action, error)
	CreateAction(ctx context.Context, input client.ActionInput) (*model.Action, error)
	Register(ctx context.Context, actionID, userID string) (string, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
	CreateUser(ctx context.Context, user model.User) error
	CheckUsername(ctx context.Context, username string) (bool, error)
	Statistics(ctx context.Context) (*client.Statistics, error)
}

// Bot aggregates the Telegram API with the backing service client and the
// per-user conversation sessions.
type Bot struct {
	api      *tgbotapi.BotAPI
	client   apiClient
	sessions *SessionStore
}

func New(token string, api apiClient, sessions *SessionStore) (*Bot, error) {
	tg, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Info().Str("account", tg.Self.UserName).Msg("bot authorized")

	return &Bot{api: tg, client: api, sessions: sessions}, nil
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Info().Msg("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				log.Error().Err(err).Msg("handle callback")
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				log.Error().Err(err).Msg("handle message")
			}
		}
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}
	userID := msg.From.ID
	text := strings.TrimSpace(msg.Text)

	if _, active := b.sessions.Get(userID); active {
		if isCancelInput(text) || (msg.IsCommand() && msg.Command() == "cancel") {
			b.sessions.Delete(userID)
			return b.sendWithMenu(msg.Chat.ID, "⏪ Ввод отменён. Я здесь, чтобы начать заново.")
		}
		// Menu phrases and commands do not interrupt an active flow; the
		// current field stays pending until answered or cancelled.
		if msg.IsCommand() || isMenuLabel(text) {
			return b.sendText(msg.Chat.ID, replyFlowActive)
		}
		reply, finished := b.processFlowInput(ctx, userID, text)
		if reply == "" {
			return nil
		}
		if finished {
			return b.sendWithMenu(msg.Chat.ID, reply)
		}
		return b.sendWithReplyMarkup(msg.Chat.ID, reply, cancelKeyboard())
	}

	if msg.IsCommand() {
		log.Info().Int64("user", userID).Str("command", msg.Command()).Msg("command received")
		return b.handleCommand(ctx, msg)
	}

	switch text {
	case "Привет":
		return b.sendText(msg.Chat.ID, "Привет!")
	case menuLabelActions:
		return b.handleListActions(ctx, msg)
	case menuLabelPropose:
		return b.handlePropose(ctx, msg)
	case menuLabelMyDetails:
		return b.handleMyDetails(ctx, msg)
	case menuLabelStatistics:
		return b.handleStatistics(ctx, msg)
	case menuLabelTips:
		return b.sendWithMenu(msg.Chat.ID, randomTip())
	default:
		return b.handleStart(ctx, msg)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start", "help":
		return b.handleStart(ctx, msg)
	case "actions":
		return b.handleListActions(ctx, msg)
	case "propose":
		return b.handlePropose(ctx, msg)
	case "mydetails":
		return b.handleMyDetails(ctx, msg)
	case "statistics":
		return b.handleStatistics(ctx, msg)
	case "tips":
		return b.sendWithMenu(msg.Chat.ID, randomTip())
	case "cancel":
		return b.sendWithMenu(msg.Chat.ID, "Сейчас нет активного ввода.")
	default:
		return b.sendWithMenu(msg.Chat.ID, "Команда не поддерживается. Загляни в /help.")
	}
}

// handleStart greets a known user or opens the registration flow for a new
// one.
func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	userID := msg.From.ID
	user, err := b.client.GetUser(ctx, strconv.FormatInt(userID, 10))
	if err != nil {
		log.Error().Err(err).Int64("user", userID).Msg("failed to fetch user")
		return b.sendText(msg.Chat.ID, "😔 Сервис временно недоступен. Попробуйте позже.")
	}

	if user == nil {
		return b.sendWithReplyMarkup(msg.Chat.ID, b.startRegistration(userID), cancelKeyboard())
	}

	text := fmt.Sprintf(
		"😊 Привет, %s! Я бот, который поможет тебе заботиться об окружающей среде.\n\n"+
			"Вот что я умею:\n"+
			"/start — показать это приветственное сообщение\n"+
			"/actions — показать список доступных акций 🌳\n"+
			"/propose — предложить новую акцию 💡\n"+
			"/mydetails — просмотр личных данных 👤\n"+
			"/statistics — получить статистику 📊\n"+
			"/tips — получить советы 💡",
		escape(user.Name),
	)
	return b.sendWithMenu(msg.Chat.ID, text)
}

// handleListActions shows upcoming actions in the user's city, each with a
// register button.
func (b *Bot) handleListActions(ctx context.Context, msg *tgbotapi.Message) error {
	userID := strconv.FormatInt(msg.From.ID, 10)
	user, err := b.client.GetUser(ctx, userID)
	if err != nil || user == nil {
		return b.sendWithMenu(msg.Chat.ID, "🤔 Не удалось получить ваши данные. Попробуйте /start ещё раз.")
	}
	if user.City == "" {
		return b.sendWithMenu(msg.Chat.ID, "Город не указан. Укажите свой город, используя команду /start.")
	}

	actions, err := b.client.ListActions(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list actions")
		return b.sendWithMenu(msg.Chat.ID, "😔 Не удалось получить список акций. Попробуйте позже.")
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	shown := 0
	for _, action := range actions {
		date, err := model.ParseDate(action.Date)
		if err != nil || action.Location != user.City || date.Before(today) {
			continue
		}
		shown++
		reply := tgbotapi.NewMessage(msg.Chat.ID, formatAction(action))
		reply.ParseMode = tgbotapi.ModeHTML
		reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Записаться ✅", cbRegisterPrefix+action.ID),
			),
		)
		if _, err := b.api.Send(reply); err != nil {
			return err
		}
	}

	if shown == 0 {
		return b.sendWithMenu(msg.Chat.ID, "🌱 В вашем городе пока нет запланированных акций.")
	}
	return nil
}

func (b *Bot) handlePropose(_ context.Context, msg *tgbotapi.Message) error {
	return b.sendWithReplyMarkup(msg.Chat.ID, b.startProposal(msg.From.ID), cancelKeyboard())
}

func (b *Bot) handleMyDetails(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.client.GetUser(ctx, strconv.FormatInt(msg.From.ID, 10))
	if err != nil || user == nil {
		return b.sendWithMenu(msg.Chat.ID, replyTryLater)
	}
	return b.sendWithMenu(msg.Chat.ID, formatUser(*user))
}

// handleStatistics combines server totals with a client-side breakdown for
// the asking user.
func (b *Bot) handleStatistics(ctx context.Context, msg *tgbotapi.Message) error {
	userID := strconv.FormatInt(msg.From.ID, 10)
	user, err := b.client.GetUser(ctx, userID)
	if err != nil || user == nil {
		return b.sendWithMenu(msg.Chat.ID, replyTryLater)
	}

	stats, err := b.client.Statistics(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch statistics")
		return b.sendWithMenu(msg.Chat.ID, "😔 Не удалось получить статистику. Попробуйте позже.")
	}

	actions, err := b.client.ListActions(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list actions")
		return b.sendWithMenu(msg.Chat.ID, "😔 Не удалось получить данные об акциях. Попробуйте позже.")
	}

	mine := 0
	inCity := 0
	for _, action := range actions {
		if action.ProposerID == userID {
			mine++
		}
		if user.City != "" && action.Location == user.City {
			inCity++
		}
	}

	text := fmt.Sprintf(
		"📊 <b>Статистика</b>\n\n"+
			"🌱 <b>Ваши предложения:</b> %d\n"+
			"🏘️ <b>Предложения в вашем городе:</b> %d\n"+
			"👥 <b>Всего участников:</b> %d\n"+
			"🌍 <b>Всего акций:</b> %d",
		mine, inCity, stats.TotalUsers, stats.TotalActions,
	)
	return b.sendWithMenu(msg.Chat.ID, text)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb.From == nil || !strings.HasPrefix(cb.Data, cbRegisterPrefix) {
		_, err := b.api.Request(tgbotapi.NewCallback(cb.ID, ""))
		return err
	}

	actionID := strings.TrimPrefix(cb.Data, cbRegisterPrefix)
	userID := strconv.FormatInt(cb.From.ID, 10)

	message, err := b.client.Register(ctx, actionID, userID)
	if err != nil {
		log.Error().Err(err).Str("action_id", actionID).Str("user_id", userID).Msg("registration failed")
		_, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "😔 Не удалось зарегистрироваться на акцию. Попробуйте позже."))
		return err
	}

	if message == "" {
		message = "✅ Вы успешно зарегистрированы!"
	}
	log.Info().Str("action_id", actionID).Str("user_id", userID).Msg("register callback handled")
	_, err = b.api.Request(tgbotapi.NewCallback(cb.ID, message))
	return err
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) sendWithMenu(chatID int64, text string) error {
	return b.sendWithReplyMarkup(chatID, text, mainMenuKeyboard())
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.api.Send(msg)
	return err
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelActions),
			tgbotapi.NewKeyboardButton(menuLabelPropose),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelMyDetails),
			tgbotapi.NewKeyboardButton(menuLabelStatistics),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelTips),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func isCancelInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancelDialog) || value == "отменить ввод" || value == "отмена"
}

func isMenuLabel(text string) bool {
	switch strings.TrimSpace(text) {
	case menuLabelActions, menuLabelPropose, menuLabelMyDetails, menuLabelStatistics, menuLabelTips:
		return true
	}
	return false
}
