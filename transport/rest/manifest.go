package rest

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/workshop-backend/internal/apperror"
	"github.com/rocketscienceinc/workshop-backend/internal/service"
)

type manifestHandler struct {
	logger *slog.Logger
}

func newManifestHandler(logger *slog.Logger) *manifestHandler {
	return &manifestHandler{
		logger: logger.With("component", "manifest-handler"),
	}
}

// Orders extracts the gift orders from a manifest body and returns them one
// per line.
func (that *manifestHandler) Orders(ctx echo.Context) error {
	mediaType, _, err := mime.ParseMediaType(ctx.Request().Header.Get(echo.HeaderContentType))
	if err != nil {
		return ctx.NoContent(http.StatusUnsupportedMediaType)
	}

	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return ctx.NoContent(http.StatusBadRequest)
	}

	orders, err := service.ParseManifest(mediaType, body)
	switch {
	case errors.Is(err, apperror.ErrUnsupportedMedia):
		return ctx.NoContent(http.StatusUnsupportedMediaType)
	case errors.Is(err, apperror.ErrInvalidManifest):
		return ctx.String(http.StatusBadRequest, "Invalid manifest")
	case errors.Is(err, apperror.ErrNoMagicKeyword):
		return ctx.String(http.StatusBadRequest, "Magic keyword not provided")
	case errors.Is(err, apperror.ErrNoOrders):
		return ctx.NoContent(http.StatusNoContent)
	case err != nil:
		that.logger.Error("manifest parsing failed", "error", err)
		return ctx.NoContent(http.StatusInternalServerError)
	}

	lines := make([]string, 0, len(orders))
	for _, order := range orders {
		lines = append(lines, order.String())
	}

	return ctx.String(http.StatusOK, strings.Join(lines, "\n"))
}
