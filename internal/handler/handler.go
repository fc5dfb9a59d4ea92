package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"sellerbot/config"
	"sellerbot/internal/domain"
	"sellerbot/internal/generator"
	"sellerbot/internal/repository"
)

type Handler struct {
	logger   *zap.Logger
	cfg      *config.Config
	users    *repository.UserStore
	journal  *repository.JournalRepository
	gen      generator.Generator
	sessions *SessionManager
	limiter  *userLimiter
}

func NewHandler(cfg *config.Config, logger *zap.Logger, users *repository.UserStore, journal *repository.JournalRepository, gen generator.Generator) *Handler {
	return &Handler{
		cfg:      cfg,
		logger:   logger,
		users:    users,
		journal:  journal,
		gen:      gen,
		sessions: NewSessionManager(),
		limiter:  newUserLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst),
	}
}

// DefaultHandler receives every bot update and dispatches it. Button presses
// go through the callback switch; text messages are routed by the session's
// awaited-input kind. A panic in one user's flow must never take down the
// process, hence the recover.
func (h *Handler) DefaultHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("recovered from panic in update handler",
				zap.Any("panic", r),
				zap.Int64("update_id", update.ID))
		}
	}()

	if update.CallbackQuery != nil {
		h.handleCallback(ctx, b, update.CallbackQuery)
		return
	}

	if update.Message != nil && update.Message.From != nil {
		h.handleMessage(ctx, b, update.Message)
	}
}

// handleCallback answers the callback (clears the client spinner) and
// replaces the current screen
func (h *Handler) handleCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callback.ID,
	})
	if err != nil {
		h.logger.Warn("failed to answer callback query", zap.Error(err))
	}

	msg := callback.Message.Message
	if msg == nil {
		h.logger.Warn("callback without accessible message",
			zap.Int64("telegram_id", callback.From.ID))
		return
	}

	userID := callback.From.ID
	chatID := msg.Chat.ID
	messageID := msg.ID

	h.logger.Debug("callback received",
		zap.Int64("telegram_id", userID),
		zap.String("data", callback.Data))

	switch callback.Data {
	case cbChooseMarketplace:
		h.showChooseMarketplace(ctx, b, chatID, messageID)

	case cbMarketplaceWB, cbMarketplaceOzon:
		h.handleMarketplaceSelected(ctx, b, userID, chatID, messageID, callback.Data)

	case cbMainMenu:
		// Backing out to the main menu abandons any half-finished flow
		h.sessions.Clear(userID)
		h.showMainMenu(ctx, b, userID, chatID, messageID)

	case cbDescribe:
		h.sessions.Set(userID, domain.Session{Awaiting: domain.AwaitingDescription})
		h.editScreen(ctx, b, chatID, messageID, textDescribeInput, backKeyboard(cbMainMenu))

	case cbKeywords:
		h.sessions.Set(userID, domain.Session{Awaiting: domain.AwaitingKeywords})
		h.editScreen(ctx, b, chatID, messageID, textKeywordsInput, backKeyboard(cbMainMenu))

	case cbReviewsSubmenu:
		h.sessions.Clear(userID)
		h.showReviewsSubmenu(ctx, b, chatID, messageID)

	case cbReviewReply:
		h.sessions.Set(userID, domain.Session{
			Awaiting:   domain.AwaitingReviewText,
			ReviewType: domain.ReviewTypeReview,
		})
		h.editScreen(ctx, b, chatID, messageID, textReviewInput, backKeyboard(cbReviewsSubmenu))

	case cbQuestionReply:
		h.sessions.Set(userID, domain.Session{
			Awaiting:   domain.AwaitingQuestion,
			ReviewType: domain.ReviewTypeQuestion,
		})
		h.editScreen(ctx, b, chatID, messageID, textQuestionInput, backKeyboard(cbReviewsSubmenu))

	case cbPayment:
		h.editScreen(ctx, b, chatID, messageID, textPayment, backKeyboard(cbMainMenu))

	case cbProfile:
		h.editScreen(ctx, b, chatID, messageID, h.profileText(userID), backKeyboard(cbMainMenu))

	case cbInstructions:
		h.editScreen(ctx, b, chatID, messageID, textInstructions, backKeyboard(cbMainMenu))

	default:
		h.logger.Warn("unknown callback data",
			zap.String("data", callback.Data),
			zap.Int64("telegram_id", userID))
	}
}

// handleMessage routes a free-text message to exactly one handler chosen by
// the session's awaited-input kind
func (h *Handler) handleMessage(ctx context.Context, b *bot.Bot, msg *models.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	if text == "" {
		return
	}

	if strings.HasPrefix(text, "/start") {
		h.sessions.Clear(userID)
		h.showStart(ctx, b, chatID)
		return
	}

	session := h.sessions.Get(userID)

	switch session.Awaiting {
	case domain.AwaitingDescription:
		h.handleGenerationInput(ctx, b, userID, chatID, kindDescription, text)

	case domain.AwaitingKeywords:
		h.handleGenerationInput(ctx, b, userID, chatID, kindKeywords, text)

	case domain.AwaitingReviewText, domain.AwaitingQuestion:
		// First step of the two-step reviews flow: keep the review text and
		// ask for product info
		session.PendingInput = text
		session.Awaiting = domain.AwaitingProductInfo
		h.sessions.Set(userID, session)
		h.sendText(ctx, b, chatID, textProductInfoInput)

	case domain.AwaitingProductInfo:
		kind := kindReview
		if session.ReviewType == domain.ReviewTypeQuestion {
			kind = kindQuestion
		}
		h.handleGenerationInput(ctx, b, userID, chatID, kind, text)

	default:
		h.sendText(ctx, b, chatID, textUseMenu)
	}
}

// handleMarketplaceSelected (re)creates the profile and shows the main menu.
// Reselecting a marketplace deliberately resets quota and tariff.
func (h *Handler) handleMarketplaceSelected(ctx context.Context, b *bot.Bot, userID, chatID int64, messageID int, marketplace string) {
	if _, err := h.selectMarketplace(userID, marketplace); err != nil {
		h.logger.Error("failed to save profile",
			zap.Error(err),
			zap.Int64("telegram_id", userID))
		h.editScreen(ctx, b, chatID, messageID, textGenerationFailed, backKeyboard(cbChooseMarketplace))
		return
	}
	h.showMainMenu(ctx, b, userID, chatID, messageID)
}

// selectMarketplace resets the user's profile for the chosen marketplace
// and drops any in-flight session
func (h *Handler) selectMarketplace(userID int64, marketplace string) (domain.UserProfile, error) {
	if !domain.IsValidMarketplace(marketplace) {
		return domain.UserProfile{}, fmt.Errorf("invalid marketplace: %q", marketplace)
	}

	profile := domain.NewUserProfile(marketplace, h.cfg.FreeRequests)
	if err := h.users.Put(userID, profile); err != nil {
		return domain.UserProfile{}, err
	}

	h.sessions.Clear(userID)

	h.logger.Info("profile created",
		zap.Int64("telegram_id", userID),
		zap.String("marketplace", marketplace))

	return profile, nil
}

// profileText renders the profile screen. Users without a stored profile see
// the default free-tariff values; nothing is written.
func (h *Handler) profileText(userID int64) string {
	tariff := domain.TariffFree
	requestsLeft := domain.DefaultFreeRequests

	profile, err := h.users.Get(userID)
	if err == nil {
		tariff = profile.Tariff
		requestsLeft = profile.RequestsLeft
	}

	total := 0
	if h.journal != nil {
		if n, err := h.journal.CountByUser(userID); err == nil {
			total = n
		}
	}

	return fmt.Sprintf(textProfile, tariff, requestsLeft, "none", total)
}

// ===== screens =====

func (h *Handler) showStart(ctx context.Context, b *bot.Bot, chatID int64) {
	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: btnStartUsing, CallbackData: cbChooseMarketplace},
			},
		},
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        textStart,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		h.logger.Error("failed to send start message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func (h *Handler) showChooseMarketplace(ctx context.Context, b *bot.Bot, chatID int64, messageID int) {
	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: btnWildberries, CallbackData: cbMarketplaceWB}},
			{{Text: btnOzon, CallbackData: cbMarketplaceOzon}},
		},
	}
	h.editScreen(ctx, b, chatID, messageID, textChooseMarketplace, keyboard)
}

func (h *Handler) showMainMenu(ctx context.Context, b *bot.Bot, userID, chatID int64, messageID int) {
	profile, err := h.users.Get(userID)
	if err != nil {
		// No profile yet: send the user back to marketplace selection
		// instead of showing a menu with a dangling marketplace
		h.showChooseMarketplace(ctx, b, chatID, messageID)
		return
	}

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: btnDescribe, CallbackData: cbDescribe}},
			{{Text: btnKeywords, CallbackData: cbKeywords}},
			{{Text: btnReviews, CallbackData: cbReviewsSubmenu}},
			{{Text: btnInstructions, CallbackData: cbInstructions}},
			{{Text: btnPayment, CallbackData: cbPayment}},
			{{Text: btnProfile, CallbackData: cbProfile}},
			{{Text: btnBack, CallbackData: cbChooseMarketplace}},
		},
	}
	h.editScreen(ctx, b, chatID, messageID, fmt.Sprintf(textMainMenu, profile.Marketplace), keyboard)
}

func (h *Handler) showReviewsSubmenu(ctx context.Context, b *bot.Bot, chatID int64, messageID int) {
	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: btnReviewReply, CallbackData: cbReviewReply}},
			{{Text: btnQuestion, CallbackData: cbQuestionReply}},
			{{Text: btnBack, CallbackData: cbMainMenu}},
		},
	}
	h.editScreen(ctx, b, chatID, messageID, textReviewsSubmenu, keyboard)
}

// ===== send helpers =====

func (h *Handler) editScreen(ctx context.Context, b *bot.Bot, chatID int64, messageID int, text string, keyboard *models.InlineKeyboardMarkup) {
	_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ReplyMarkup: keyboard,
	})
	if err == nil {
		return
	}

	h.logger.Warn("failed to edit message, sending a new one",
		zap.Error(err),
		zap.Int64("chat_id", chatID))

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		h.logger.Error("failed to send screen",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func (h *Handler) sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func backKeyboard(target string) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: btnBack, CallbackData: target}},
		},
	}
}
