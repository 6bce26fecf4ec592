package ui

import (
	"github.com/maxence-charriere/go-app/v9/pkg/app"

	"relman/theme"
)

type navItem struct {
	Path  string
	Icon  string
	Label string
}

var navItems = []navItem{
	{Path: "/", Icon: "groups", Label: "People"},
	{Path: "/diagnostics", Icon: "monitor_heart", Label: "Diagnostics"},
}

type Sidebar struct {
	app.Compo
	Uptime        string
	APIReachable  bool
	APIBaseURL    string
	Active        string
	Theme         theme.Theme
	IsOpen        bool
	OnToggleTheme func(app.Context, app.Event)
}

func (s *Sidebar) Render() app.UI {
	apiText := "Unreachable"
	apiColor := "var(--md-sys-color-error)"
	if s.APIReachable {
		apiText = "Online"
		apiColor = "var(--md-sys-color-success)"
	}

	uptime := s.Uptime
	if uptime == "" {
		uptime = "-"
	}

	sidebarClass := "sidebar"
	if s.IsOpen {
		sidebarClass += " open"
	}

	return app.Aside().Class(sidebarClass).Body(
		app.Div().Class("sidebar-header").Body(
			app.Div().Class("brand").Body(
				app.Text(appName()),
			),
			app.Button().Class("btn-icon").Title("Toggle Theme").OnClick(s.OnToggleTheme).Body(
				app.Span().Class("material-symbols-rounded").Text(s.Theme.Icon()),
			),
		),

		app.Div().Class("repo-list-container").Body(
			app.Div().Class("section-label").Text("Menu"),
			app.Ul().Class("repo-list").Body(
				app.Range(navItems).Slice(func(i int) app.UI {
					item := navItems[i]
					class := "repo-item"
					if s.Active == item.Path {
						class += " active"
					}
					return app.Li().Class(class).Body(
						app.A().Href(item.Path).Style("display", "flex").Style("gap", "12px").Body(
							app.Span().Class("material-symbols-rounded").Text(item.Icon),
							app.Span().Class("path").Text(item.Label),
						),
					)
				}),
			),
		),

		app.Div().Class("sidebar-footer").Body(
			app.Div().Class("sys-stat").Body(
				app.Div().Class("sys-stat-label").Body(
					app.Span().Class("material-symbols-rounded").Text("dns"),
					app.Text("Uptime"),
				),
				app.Div().Style("font-weight", "500").Text(uptime),
			),
			app.Div().Class("sys-stat").Title(s.APIBaseURL).Body(
				app.Div().Class("sys-stat-label").Body(
					app.Span().Class("material-symbols-rounded").Text("hub"),
					app.Text("API"),
				),
				app.Div().Style("display", "flex").Style("align-items", "center").Style("gap", "6px").Body(
					app.Div().Class("status-dot").Style("background-color", apiColor),
					app.Span().Text(apiText),
				),
			),
		),
	)
}
