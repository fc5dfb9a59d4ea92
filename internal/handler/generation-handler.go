package handler

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"sellerbot/internal/domain"
	"sellerbot/internal/generator"
	"sellerbot/internal/repository"
)

// Generation kinds, also used for journal rows
const (
	kindDescription = "description"
	kindKeywords    = "keywords"
	kindReview      = "review"
	kindQuestion    = "question"
)

// handleGenerationInput runs one quota-gated generation and replies with the
// result. The session is cleared once the flow has produced a terminal reply
// (success or exhausted quota); on a generation failure it is kept so the
// user can retry the same input.
func (h *Handler) handleGenerationInput(ctx context.Context, b *bot.Bot, userID, chatID int64, kind, input string) {
	if !h.limiter.Allow(userID) {
		h.sendText(ctx, b, chatID, textRateLimited)
		return
	}

	reply, done := h.runGeneration(ctx, userID, kind, input)
	if done {
		h.sessions.Clear(userID)
	}
	h.sendText(ctx, b, chatID, reply)
}

// runGeneration performs the quota gate, prompt build, generation call,
// conditional quota decrement and journal write. It returns the user-facing
// reply and whether the flow reached a terminal state.
//
// The quota is charged only after a successful generation, and the decrement
// is conditional under the store lock: when two concurrent requests race for
// the last remaining request, exactly one of them observes exhaustion.
func (h *Handler) runGeneration(ctx context.Context, userID int64, kind, input string) (string, bool) {
	profile, err := h.users.Get(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNoProfile) {
			return textNoProfile, true
		}
		h.logger.Error("failed to load profile",
			zap.Error(err),
			zap.Int64("telegram_id", userID))
		return textGenerationFailed, false
	}

	if !profile.HasRequests() {
		h.logger.Info("quota exhausted",
			zap.Int64("telegram_id", userID),
			zap.String("kind", kind))
		return textQuotaExhausted, true
	}

	instruction := h.buildInstruction(userID, kind, input, profile)
	if instruction == "" {
		return textNoProfile, true
	}

	result, err := h.gen.Generate(ctx, instruction)
	if err != nil {
		h.logger.Error("generation failed",
			zap.Error(err),
			zap.Int64("telegram_id", userID),
			zap.String("kind", kind))
		return textGenerationFailed, false
	}

	if err := h.users.ConsumeRequest(userID); err != nil {
		if errors.Is(err, repository.ErrQuotaExhausted) || errors.Is(err, repository.ErrNoProfile) {
			// A concurrent request spent the last quota first
			return textQuotaExhausted, true
		}
		h.logger.Error("failed to persist quota decrement",
			zap.Error(err),
			zap.Int64("telegram_id", userID))
		return textGenerationFailed, false
	}

	if h.journal != nil {
		if err := h.journal.Record(userID, kind, profile.Marketplace, len(instruction), len(result)); err != nil {
			h.logger.Warn("failed to record journal entry", zap.Error(err))
		}
	}

	h.logger.Info("generation completed",
		zap.Int64("telegram_id", userID),
		zap.String("kind", kind),
		zap.Int("reply_len", len(result)))

	return result, true
}

// buildInstruction maps a generation kind to its prompt. For the reviews
// flow the session carries the review/question text collected one step
// earlier, and input is the product info.
func (h *Handler) buildInstruction(userID int64, kind, input string, profile domain.UserProfile) string {
	switch kind {
	case kindDescription:
		return generator.DescriptionPrompt(input, profile.Marketplace)
	case kindKeywords:
		return generator.KeywordsPrompt(input)
	case kindReview, kindQuestion:
		session := h.sessions.Get(userID)
		return generator.ReviewReplyPrompt(session.PendingInput, input)
	default:
		return ""
	}
}
