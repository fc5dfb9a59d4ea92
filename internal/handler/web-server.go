package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Response represents the API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// StartWebServer serves the Telegram webhook, the health check and the admin
// API until the context is cancelled
func (h *Handler) StartWebServer(ctx context.Context, b *bot.Bot) {
	r := mux.NewRouter()

	if h.cfg.UseWebhook() {
		r.HandleFunc("/webhook", b.WebhookHandler()).Methods("POST")
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	// Admin API
	r.HandleFunc("/api/admin/users", h.adminAuth(h.handleAdminUsers)).Methods("GET")
	r.HandleFunc("/api/admin/journal", h.adminAuth(h.handleAdminJournal)).Methods("GET")

	port := h.cfg.Port
	if !strings.Contains(port, ":") {
		port = ":" + port
	}

	server := &http.Server{
		Addr:         port,
		Handler:      r,
		ReadTimeout:  h.cfg.ReadTimeout,
		WriteTimeout: h.cfg.WriteTimeout,
		IdleTimeout:  h.cfg.IdleTimeout,
	}

	h.logger.Info("Starting web server",
		zap.String("port", port),
		zap.Bool("webhook", h.cfg.UseWebhook()))

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			h.logger.Fatal("Failed to start web server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	h.logger.Info("Shutting down web server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		h.logger.Error("Server shutdown error", zap.Error(err))
	}
}

func (h *Handler) sendSuccessResponse(w http.ResponseWriter, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *Handler) sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(Response{
		Success: false,
		Message: message,
	})
}
