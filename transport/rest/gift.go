package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/workshop-backend/internal/apperror"
	"github.com/rocketscienceinc/workshop-backend/internal/service"
)

const giftCookieName = "gift"

type giftHandler struct {
	logger *slog.Logger
	gifts  service.GiftService
}

func newGiftHandler(logger *slog.Logger, gifts service.GiftService) *giftHandler {
	return &giftHandler{
		logger: logger.With("component", "gift-handler"),
		gifts:  gifts,
	}
}

// Wrap signs the request body into a gift token delivered as a cookie.
func (that *giftHandler) Wrap(ctx echo.Context) error {
	var claims map[string]any
	if err := json.NewDecoder(ctx.Request().Body).Decode(&claims); err != nil {
		return ctx.NoContent(http.StatusBadRequest)
	}

	token, err := that.gifts.Wrap(claims)
	if err != nil {
		that.logger.Error("failed to wrap gift", "error", err)
		return ctx.NoContent(http.StatusInternalServerError)
	}

	ctx.SetCookie(&http.Cookie{
		Name:  giftCookieName,
		Value: token,
	})

	return ctx.NoContent(http.StatusOK)
}

// Unwrap verifies the gift cookie and returns whatever was wrapped.
func (that *giftHandler) Unwrap(ctx echo.Context) error {
	cookie, err := ctx.Cookie(giftCookieName)
	if err != nil {
		return ctx.NoContent(http.StatusBadRequest)
	}

	claims, err := that.gifts.Unwrap(cookie.Value)
	if err != nil {
		return ctx.NoContent(http.StatusBadRequest)
	}

	return ctx.JSON(http.StatusOK, claims)
}

// Decode verifies a token from the body against Santa's public key.
func (that *giftHandler) Decode(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return ctx.NoContent(http.StatusBadRequest)
	}

	claims, err := that.gifts.Decode(string(body))
	switch {
	case errors.Is(err, apperror.ErrGiftTampered):
		return ctx.NoContent(http.StatusUnauthorized)
	case err != nil:
		return ctx.NoContent(http.StatusBadRequest)
	}

	return ctx.JSON(http.StatusOK, claims)
}
