package api

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/katakuxiko/guidance/internal/model"
)

// Aggregator fans a query out to the providers.
type Aggregator interface {
	Query(ctx context.Context, query string) model.AggregatedResponse
}

// Handler хранит зависимости для обработчиков
type Handler struct {
	agg Aggregator
}

func NewHandler(agg Aggregator) *Handler {
	return &Handler{agg: agg}
}

// Health — простая проверка
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.SendString("ok")
}

// Query validates the body and returns the merged provider answers.
// Once past validation the status is always 200.
func (h *Handler) Query(c *fiber.Ctx) error {
	var req model.QueryRequest
	// decode regardless of Content-Type
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed JSON body")
	}

	query, err := validateQuery(req.Query)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{Error: verr.Message})
		}
		return err
	}

	return c.JSON(h.agg.Query(c.UserContext(), query))
}

func validateQuery(raw string) (string, error) {
	q := strings.TrimSpace(raw)
	if q == "" {
		return "", &model.ValidationError{Field: "query", Message: model.ErrQueryRequired}
	}
	return q, nil
}
