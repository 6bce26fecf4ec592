package ui

import (
	"github.com/maxence-charriere/go-app/v9/pkg/app"
)

type StatCard struct {
	app.Compo
	Title  string
	Value  string
	Detail string
	Icon   string
	Accent string
}

func (c *StatCard) Render() app.UI {
	accent := c.Accent
	if accent == "" {
		accent = "var(--md-sys-color-primary)"
	}

	return app.Div().Class("stat-card").Body(
		app.Div().Class("stat-card-icon").Style("color", accent).Body(
			app.Span().Class("material-symbols-rounded").Text(c.Icon),
		),
		app.Div().Class("stat-label").Text(c.Title),
		app.Div().Class("stat-value").Style("color", accent).Text(c.Value),
		app.If(c.Detail != "",
			app.Div().Class("stat-sub").Text(c.Detail),
		),
	)
}
