package server

import (
	"context"
	"net/http"

	"mixup/internal/handlers"
	applog "mixup/internal/log"
)

type route struct {
	path      string
	handler   http.HandlerFunc
	protected bool
}

// routes lists every path the server answers. Paths ending in "/" are
// subtree patterns and hand the remainder to the resource handler.
var routes = []route{
	{"/healthz", handlers.Health, false},
	{"/login", handlers.Login, false},
	{"/signup", handlers.Signup, false},
	{"/logout", handlers.Logout, false},
	{"/", handlers.Home, false},

	{"/app", handlers.Dashboard, true},
	{"/app/", handlers.Dashboard, true},
	{"/app/api/liquids", handlers.LiquidResource, true},
	{"/app/api/liquids/", handlers.LiquidResource, true},
	{"/app/api/drinks", handlers.DrinkResource, true},
	{"/app/api/drinks/", handlers.DrinkResource, true},
	{"/app/api/compose", handlers.ComposeDrink, true},
	{"/app/tools/import-recipe", handlers.ToolsImportRecipe, true},
}

func newRouter() http.Handler {
	mux := http.NewServeMux()
	for _, rt := range routes {
		var h http.Handler = rt.handler
		if rt.protected {
			h = handlers.RequireAuthentication(h)
		}
		mux.Handle(rt.path, h)
	}
	applog.Debug(context.Background(), "http routes registered", "count", len(routes))
	return mux
}
