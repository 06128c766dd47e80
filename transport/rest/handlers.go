package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/workshop-backend/internal/apperror"
	"github.com/rocketscienceinc/workshop-backend/internal/game"
	"github.com/rocketscienceinc/workshop-backend/internal/service"
	"github.com/rocketscienceinc/workshop-backend/internal/usecase"
)

type gameHandler struct {
	logger *slog.Logger
	board  *usecase.BoardManager
}

func newGameHandler(logger *slog.Logger, board *usecase.BoardManager) *gameHandler {
	return &gameHandler{
		logger: logger.With("component", "game-handler"),
		board:  board,
	}
}

func (that *gameHandler) Board(ctx echo.Context) error {
	return ctx.String(http.StatusOK, that.board.Current().Render())
}

func (that *gameHandler) Reset(ctx echo.Context) error {
	return ctx.String(http.StatusOK, that.board.Reset().Render())
}

func (that *gameHandler) RandomBoard(ctx echo.Context) error {
	return ctx.String(http.StatusOK, that.board.Randomize().Render())
}

// Place validates the path parameters, attempts the move and maps the game
// conditions onto status codes: bad input is 400, a finished game or a draw
// is 503 with the rendered board, a full column is a bare 503.
func (that *gameHandler) Place(ctx echo.Context) error {
	var tile game.Tile
	switch ctx.Param("team") {
	case "cookie":
		tile = game.TileCookie
	case "milk":
		tile = game.TileMilk
	default:
		return ctx.NoContent(http.StatusBadRequest)
	}

	column, err := strconv.Atoi(ctx.Param("column"))
	if err != nil || column < 1 || column > game.Size {
		return ctx.NoContent(http.StatusBadRequest)
	}

	board, err := that.board.Place(column-1, tile)
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		return ctx.String(http.StatusServiceUnavailable, board.Render())
	case errors.Is(err, apperror.ErrColumnFull):
		return ctx.NoContent(http.StatusServiceUnavailable)
	case err != nil:
		that.logger.Error("unexpected move failure", "error", err)
		return ctx.NoContent(http.StatusInternalServerError)
	}

	if board.Result() == game.ResultDraw {
		return ctx.String(http.StatusServiceUnavailable, board.Render())
	}

	return ctx.String(http.StatusOK, board.Render())
}

type milkHandler struct {
	logger *slog.Logger
	bucket *usecase.BucketManager
}

func newMilkHandler(logger *slog.Logger, bucket *usecase.BucketManager) *milkHandler {
	return &milkHandler{
		logger: logger.With("component", "milk-handler"),
		bucket: bucket,
	}
}

// Withdraw takes one unit of milk. A JSON body asks for the withdrawn unit
// converted between volume units; any other body gets the plain confirmation.
func (that *milkHandler) Withdraw(ctx echo.Context) error {
	if _, err := that.bucket.Withdraw(); err != nil {
		return ctx.String(http.StatusTooManyRequests, "No milk available\n")
	}

	if ctx.Request().Header.Get(echo.HeaderContentType) != echo.MIMEApplicationJSON {
		return ctx.String(http.StatusOK, "Milk withdrawn\n")
	}

	var measurement service.Measurement
	decoder := json.NewDecoder(ctx.Request().Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&measurement); err != nil {
		return ctx.NoContent(http.StatusBadRequest)
	}

	converted, err := service.ConvertMeasurement(measurement)
	if err != nil {
		return ctx.NoContent(http.StatusBadRequest)
	}

	return ctx.JSON(http.StatusOK, converted)
}

func (that *milkHandler) Refill(ctx echo.Context) error {
	that.bucket.Refill()
	return ctx.NoContent(http.StatusOK)
}
