package ui

import (
	"github.com/maxence-charriere/go-app/v9/pkg/app"

	"relman/checker"
	"relman/logger"
	"relman/theme"
)

const diagnosticsLimit = 100

// DiagnosticsPage lists what the client logged recently, plus the status
// of the serving host.
type DiagnosticsPage struct {
	app.Compo
	Logs        []logger.LogEntry
	Status      checker.SystemStatus
	StatusError string
	Theme       theme.Theme
	SidebarOpen bool
}

func (p *DiagnosticsPage) OnMount(ctx app.Context) {
	if !app.IsClient {
		return
	}
	p.Theme = theme.Load(ctx.LocalStorage())
	applyTheme(p.Theme)
	p.load(ctx)
}

func (p *DiagnosticsPage) reload(ctx app.Context, e app.Event) {
	p.load(ctx)
}

func (p *DiagnosticsPage) load(ctx app.Context) {
	p.Logs = logger.GetLogs(diagnosticsLimit)
	p.Update()

	go func() {
		status, err := fetchStatus(ctx)
		ctx.Dispatch(func(ctx app.Context) {
			if err != nil {
				logger.Error(err, "diagnostics: status request to %s failed", statusEndpoint)
				p.StatusError = "Failed to fetch status: " + err.Error()
			} else {
				p.Status = status
				p.StatusError = ""
			}
			p.Update()
		})
	}()
}

func (p *DiagnosticsPage) toggleTheme(ctx app.Context, e app.Event) {
	p.Theme = switchTheme(ctx, p.Theme)
	p.Update()
}

func (p *DiagnosticsPage) toggleSidebar(ctx app.Context, e app.Event) {
	p.SidebarOpen = !p.SidebarOpen
	p.Update()
}

func (p *DiagnosticsPage) Render() app.UI {
	return app.Div().Class("app-layout").Body(
		&Sidebar{
			Uptime:        p.Status.UptimeString,
			APIReachable:  p.Status.APIReachable,
			APIBaseURL:    p.Status.APIBaseURL,
			Active:        "/diagnostics",
			Theme:         p.Theme,
			IsOpen:        p.SidebarOpen,
			OnToggleTheme: p.toggleTheme,
		},
		app.Div().Class("main-content").Body(
			app.Div().Class("top-bar").Body(
				app.Button().Class("btn-icon mobile-only").OnClick(p.toggleSidebar).Body(
					app.Span().Class("material-symbols-rounded").Text("menu"),
				),
				app.Div().Body(
					app.H1().Class("page-title").Text("Diagnostics"),
					app.Span().Class("page-subtitle").Text("Recent client activity and errors"),
				),
				app.Button().Class("btn-refresh").OnClick(p.reload).Body(
					app.Span().Class("material-symbols-rounded").Text("refresh"),
					app.Text("Reload"),
				),
			),
			app.If(p.StatusError != "",
				app.Div().Class("auth-error").Text(p.StatusError),
			),
			app.If(len(p.Logs) == 0,
				app.Div().Style("padding", "20px").Text("Nothing logged yet."),
			).Else(
				app.Div().Class("repo-panel").Style("margin-top", "24px").Body(
					app.Table().Body(
						app.THead().Body(
							app.Tr().Body(
								app.Th().Style("width", "180px").Text("Time"),
								app.Th().Style("width", "80px").Text("Level"),
								app.Th().Text("Message"),
								app.Th().Style("width", "30%").Text("Details"),
							),
						),
						app.TBody().Body(
							app.Range(p.Logs).Slice(func(i int) app.UI {
								l := p.Logs[i]
								return app.Tr().Class("table-row").Style("display", "table-row").Body(
									app.Td().Text(l.CreatedAt.Format("2006-01-02 15:04:05")),
									app.Td().Style("color", levelColor(l.Level)).Style("font-weight", "500").Text(l.Level),
									app.Td().Text(l.Message),
									app.Td().Style("font-family", "monospace").Style("font-size", "12px").Text(l.Details),
								)
							}),
						),
					),
				),
			),
		),
	)
}
