package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/workshop-backend/internal/apperror"
	"github.com/rocketscienceinc/workshop-backend/internal/usecase"
)

type quotePayload struct {
	Author string `json:"author"`
	Quote  string `json:"quote"`
}

type quoteHandler struct {
	logger *slog.Logger
	book   *usecase.QuoteBook
}

func newQuoteHandler(logger *slog.Logger, book *usecase.QuoteBook) *quoteHandler {
	return &quoteHandler{
		logger: logger.With("component", "quote-handler"),
		book:   book,
	}
}

func (that *quoteHandler) Reset(ctx echo.Context) error {
	if err := that.book.Reset(ctx.Request().Context()); err != nil {
		that.logger.Error("failed to reset quotes", "error", err)
		return ctx.NoContent(http.StatusInternalServerError)
	}

	return ctx.NoContent(http.StatusOK)
}

func (that *quoteHandler) Cite(ctx echo.Context) error {
	id, ok := quoteID(ctx)
	if !ok {
		return ctx.NoContent(http.StatusBadRequest)
	}

	quote, err := that.book.Get(ctx.Request().Context(), id)
	if err != nil {
		return that.quoteError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quote)
}

func (that *quoteHandler) Remove(ctx echo.Context) error {
	id, ok := quoteID(ctx)
	if !ok {
		return ctx.NoContent(http.StatusBadRequest)
	}

	quote, err := that.book.Remove(ctx.Request().Context(), id)
	if err != nil {
		return that.quoteError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quote)
}

func (that *quoteHandler) Undo(ctx echo.Context) error {
	id, ok := quoteID(ctx)
	if !ok {
		return ctx.NoContent(http.StatusBadRequest)
	}

	var payload quotePayload
	if err := ctx.Bind(&payload); err != nil {
		return ctx.NoContent(http.StatusBadRequest)
	}

	quote, err := that.book.Rewrite(ctx.Request().Context(), id, payload.Author, payload.Quote)
	if err != nil {
		return that.quoteError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quote)
}

func (that *quoteHandler) Draft(ctx echo.Context) error {
	var payload quotePayload
	if err := ctx.Bind(&payload); err != nil {
		return ctx.NoContent(http.StatusBadRequest)
	}

	quote, err := that.book.Add(ctx.Request().Context(), payload.Author, payload.Quote)
	if err != nil {
		return that.quoteError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, quote)
}

func (that *quoteHandler) List(ctx echo.Context) error {
	page, err := that.book.List(ctx.Request().Context(), ctx.QueryParam("token"))
	if errors.Is(err, apperror.ErrInvalidToken) {
		return ctx.NoContent(http.StatusBadRequest)
	}
	if err != nil {
		that.logger.Error("failed to list quotes", "error", err)
		return ctx.NoContent(http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusOK, page)
}

func (that *quoteHandler) quoteError(ctx echo.Context, err error) error {
	if errors.Is(err, apperror.ErrNotFound) {
		return ctx.NoContent(http.StatusNotFound)
	}

	that.logger.Error("quote operation failed", "error", err)
	return ctx.NoContent(http.StatusInternalServerError)
}

func quoteID(ctx echo.Context) (string, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return "", false
	}

	return id.String(), true
}
