// Package ui holds the go-app components of the client.
package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/maxence-charriere/go-app/v9/pkg/app"

	"relman/checker"
	"relman/logger"
	"relman/theme"
)

const (
	// APIBaseURLEnv is the go-app environment variable carrying the
	// backend address from the server to the client.
	APIBaseURLEnv     = "API_BASE_URL"
	AppNameEnv        = "APP_NAME"
	DefaultAPIBaseURL = "http://localhost:8000"

	statusEndpoint = "/api/status"
)

// Routes registers every page. Both binaries call it.
func Routes() {
	app.Route("/", &Home{})
	app.Route("/diagnostics", &DiagnosticsPage{})
}

func apiBaseURL() string {
	if u := strings.TrimRight(app.Getenv(APIBaseURLEnv), "/"); u != "" {
		return u
	}
	return DefaultAPIBaseURL
}

func appName() string {
	if n := app.Getenv(AppNameEnv); n != "" {
		return n
	}
	return "Relman"
}

// applyTheme marks the document so the stylesheet can switch palettes.
func applyTheme(t theme.Theme) {
	doc := app.Window().Get("document")
	doc.Get("documentElement").Call("setAttribute", "data-theme", string(t))
	classes := doc.Get("body").Get("classList")
	if t == theme.Dark {
		classes.Call("add", "dark-theme")
	} else {
		classes.Call("remove", "dark-theme")
	}
}

// fetchStatus asks the serving host for its status.
func fetchStatus(ctx context.Context) (checker.SystemStatus, error) {
	var status checker.SystemStatus

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusEndpoint, nil)
	if err != nil {
		return status, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return status, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return status, fmt.Errorf("status endpoint returned %d", resp.StatusCode)
	}
	err = json.NewDecoder(resp.Body).Decode(&status)
	return status, err
}

type browserDialogs struct{}

func (browserDialogs) Alert(message string) {
	app.Window().Call("alert", message)
}

func (browserDialogs) Confirm(message string) bool {
	return app.Window().Call("confirm", message).Bool()
}

// switchTheme flips and stores the preference, then applies whatever is
// now in effect.
func switchTheme(ctx app.Context, current theme.Theme) theme.Theme {
	next, err := theme.Toggle(ctx.LocalStorage(), current)
	if err != nil {
		logger.Warn("could not store theme: %v", err)
	}
	applyTheme(next)
	return next
}
