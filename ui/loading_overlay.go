package ui

import (
	"github.com/maxence-charriere/go-app/v9/pkg/app"

	"relman/loading"
)

// LoadingOverlay renders a loading.State. It has no logic of its own; the
// controller decides when it is visible.
type LoadingOverlay struct {
	app.Compo
	State loading.State
}

func (l *LoadingOverlay) Render() app.UI {
	class := "loader-overlay"
	if !l.State.Visible {
		class += " hidden"
	}
	return app.Div().Class(class).ID("loading").Body(
		app.Div().Class("loader-container").Body(
			app.Div().Class("spinner").Body(
				app.Div().Class("double-bounce1"),
				app.Div().Class("double-bounce2"),
			),
			app.P().Class("loader-text").Text(l.State.Message),
		),
	)
}
