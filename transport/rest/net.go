package rest

import (
	"net/http"
	"net/netip"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/workshop-backend/internal/service"
)

// netHandler answers the sleigh-routing address math endpoints. It carries no
// state, so handlers are plain methods on the empty struct.
type netHandler struct{}

func (netHandler) Dest(ctx echo.Context) error {
	return respondAddr(ctx, "from", "key", service.RouteDest)
}

func (netHandler) Key(ctx echo.Context) error {
	return respondAddr(ctx, "from", "to", service.RouteKey)
}

func (netHandler) DestV6(ctx echo.Context) error {
	return respondAddr(ctx, "from", "key", service.RouteDestV6)
}

func (netHandler) KeyV6(ctx echo.Context) error {
	return respondAddr(ctx, "from", "to", service.RouteKeyV6)
}

func respondAddr(ctx echo.Context, firstParam, secondParam string, derive func(a, b netip.Addr) (netip.Addr, error)) error {
	first, err := netip.ParseAddr(ctx.QueryParam(firstParam))
	if err != nil {
		return ctx.NoContent(http.StatusBadRequest)
	}

	second, err := netip.ParseAddr(ctx.QueryParam(secondParam))
	if err != nil {
		return ctx.NoContent(http.StatusBadRequest)
	}

	derived, err := derive(first, second)
	if err != nil {
		return ctx.NoContent(http.StatusBadRequest)
	}

	return ctx.String(http.StatusOK, derived.String())
}
