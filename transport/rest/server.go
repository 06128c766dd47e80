// Package rest exposes every workshop operation over HTTP.
package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/workshop-backend/internal/service"
	"github.com/rocketscienceinc/workshop-backend/internal/usecase"
)

type Server struct {
	logger *slog.Logger
	echo   *echo.Echo
}

func New(logger *slog.Logger, board *usecase.BoardManager, bucket *usecase.BucketManager, book *usecase.QuoteBook, gifts service.GiftService) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.GET("/ping", pingHandler)

	games := newGameHandler(logger, board)
	e.GET("/game/board", games.Board)
	e.POST("/game/reset", games.Reset)
	e.GET("/game/random-board", games.RandomBoard)
	e.POST("/game/place/:team/:column", games.Place)

	milk := newMilkHandler(logger, bucket)
	e.POST("/milk", milk.Withdraw)
	e.POST("/milk/refill", milk.Refill)

	quotes := newQuoteHandler(logger, book)
	e.POST("/quotes/reset", quotes.Reset)
	e.GET("/quotes/cite/:id", quotes.Cite)
	e.DELETE("/quotes/remove/:id", quotes.Remove)
	e.PUT("/quotes/undo/:id", quotes.Undo)
	e.POST("/quotes/draft", quotes.Draft)
	e.GET("/quotes/list", quotes.List)

	gift := newGiftHandler(logger, gifts)
	e.POST("/gift/wrap", gift.Wrap)
	e.GET("/gift/unwrap", gift.Unwrap)
	e.POST("/gift/decode", gift.Decode)

	manifests := newManifestHandler(logger)
	e.POST("/manifest", manifests.Orders)

	routes := netHandler{}
	e.GET("/net/dest", routes.Dest)
	e.GET("/net/key", routes.Key)
	e.GET("/net/v6/dest", routes.DestV6)
	e.GET("/net/v6/key", routes.KeyV6)

	decor := newDecorHandler(logger)
	e.GET("/decor/star", decor.Star)
	e.GET("/decor/present/:colour", decor.Present)
	e.GET("/decor/ornament/:state/:n", decor.Ornament)
	e.POST("/decor/lockfile", decor.Lockfile)

	return &Server{
		logger: logger.With("component", "rest"),
		echo:   e,
	}
}

// Handler exposes the underlying router, mostly for tests.
func (that *Server) Handler() http.Handler {
	return that.echo
}

// Start - serves until the context is cancelled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := that.echo.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("server shutdown failed", "error", err)
		}
	}()

	if err := that.echo.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func pingHandler(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "pong")
}
