package rest

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/workshop-backend/internal/apperror"
	"github.com/rocketscienceinc/workshop-backend/internal/service"
)

type decorHandler struct {
	logger *slog.Logger
}

func newDecorHandler(logger *slog.Logger) *decorHandler {
	return &decorHandler{
		logger: logger.With("component", "decor-handler"),
	}
}

func (that *decorHandler) Star(ctx echo.Context) error {
	return ctx.HTML(http.StatusOK, `<div id="star" class="lit"></div>`)
}

// Present renders one gift box that swaps itself for the next colour in the
// cycle when clicked.
func (that *decorHandler) Present(ctx echo.Context) error {
	colour := ctx.Param("colour")

	var next string
	switch colour {
	case "red":
		next = "blue"
	case "blue":
		next = "purple"
	case "purple":
		next = "red"
	default:
		return ctx.NoContent(http.StatusTeapot)
	}

	html := fmt.Sprintf(
		`<div class="present %s" hx-get="/decor/present/%s" hx-swap="outerHTML">`+
			`<div class="ribbon"></div><div class="ribbon"></div><div class="ribbon"></div><div class="ribbon"></div>`+
			`</div>`,
		colour, next,
	)

	return ctx.HTML(http.StatusOK, html)
}

// Ornament renders a tree ornament that toggles between lit states. The id
// segment is caller-controlled and must be escaped before it lands in markup.
func (that *decorHandler) Ornament(ctx echo.Context) error {
	state := ctx.Param("state")

	var class, next string
	switch state {
	case "on":
		class, next = "ornament on", "off"
	case "off":
		class, next = "ornament", "on"
	default:
		return ctx.NoContent(http.StatusTeapot)
	}

	n := template.HTMLEscapeString(ctx.Param("n"))

	html := fmt.Sprintf(
		`<div class="%s" id="ornament%s" hx-get="/decor/ornament/%s/%s" hx-trigger="load delay:2s once" hx-swap="outerHTML"></div>`,
		class, n, next, n,
	)

	return ctx.HTML(http.StatusOK, html)
}

// Lockfile turns every checksum in the uploaded lockfiles into a positioned
// ornament div.
func (that *decorHandler) Lockfile(ctx echo.Context) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return ctx.NoContent(http.StatusBadRequest)
	}

	var ornaments []service.Ornament
	for _, files := range form.File {
		for _, header := range files {
			file, err := header.Open()
			if err != nil {
				return ctx.NoContent(http.StatusBadRequest)
			}

			data, err := io.ReadAll(file)
			_ = file.Close()
			if err != nil {
				return ctx.NoContent(http.StatusBadRequest)
			}

			parsed, err := service.ParseLockfile(string(data))
			switch {
			case errors.Is(err, apperror.ErrBadChecksum):
				return ctx.NoContent(http.StatusUnprocessableEntity)
			case err != nil:
				return ctx.NoContent(http.StatusBadRequest)
			}

			ornaments = append(ornaments, parsed...)
		}
	}

	if len(ornaments) == 0 {
		return ctx.NoContent(http.StatusBadRequest)
	}

	var b strings.Builder
	for _, ornament := range ornaments {
		fmt.Fprintf(&b, `<div style="background-color:%s;top:%dpx;left:%dpx;"></div>`,
			ornament.Color, ornament.Top, ornament.Left)
	}

	return ctx.HTML(http.StatusOK, b.String())
}
