package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voyplan/triphub/internal/llm"
	"github.com/voyplan/triphub/internal/observability"
)

type ItineraryGenerator interface {
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
}

type GenerateHandler struct {
	llm  ItineraryGenerator
	prom *observability.Prom
}

func NewGenerateHandler(generator ItineraryGenerator, prom *observability.Prom) *GenerateHandler {
	return &GenerateHandler{llm: generator, prom: prom}
}

type GenerateRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
	Prompt string `json:"prompt" binding:"required,min=1"`
}

func (h *GenerateHandler) Generate(ctx *gin.Context) {
	var req GenerateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	var content string
	var err error

	call := func() error {
		content, err = h.llm.Generate(ctx.Request.Context(), req.APIKey, req.Prompt)
		return err
	}

	if h.prom != nil {
		_ = h.prom.ObserveUpstream("llm", call)
	} else {
		_ = call()
	}

	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			RespondBadRequest(ctx, "missing_api_key", "API key is required", nil)
			return
		}

		// generic on purpose: upstream error bodies are not passed through
		RespondError(ctx, http.StatusInternalServerError, "upstream_error", "Failed to generate itinerary", nil)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"content": content})
}
