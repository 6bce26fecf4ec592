package ui

import (
	"strconv"
	"time"

	"github.com/maxence-charriere/go-app/v9/pkg/app"

	"relman/api"
	"relman/checker"
	"relman/directory"
	"relman/loading"
	"relman/logger"
	"relman/theme"
)

const statusPollInterval = 5 * time.Second

// Home is the main page. It is also the directory.View of its service.
type Home struct {
	app.Compo
	People  []api.Person
	Stats   api.Stats
	Overlay loading.State
	Status  checker.SystemStatus
	Theme   theme.Theme

	SidebarOpen bool

	Form directory.PersonForm

	SearchInput    string
	SearchInterest string
	SearchResults  []api.Person
	Searched       bool

	ConnectFrom string
	ConnectTo   string
	Path        *api.Path

	Details     *directory.Details
	NetworkName string
	Network     []api.Person
	NetworkOpen bool

	savedContext app.Context // Persistent context from OnMount
	service      *directory.Service
	overlay      *loading.Controller
	ticker       *time.Ticker
	stopTick     chan struct{}
}

func (h *Home) OnMount(ctx app.Context) {
	if !app.IsClient {
		return
	}
	h.savedContext = ctx

	h.Theme = theme.Load(ctx.LocalStorage())
	applyTheme(h.Theme)

	h.overlay = loading.New()
	// Dispatched updates run later on the UI goroutine, so read the state
	// there rather than trusting the snapshot that queued them.
	h.overlay.SetListener(func(loading.State) {
		h.dispatch(func() { h.Overlay = h.overlay.State() })
	})
	h.Overlay = h.overlay.State()

	base := apiBaseURL()
	log := logger.Default().WithFields(map[string]any{"api": base})
	client := api.NewClient(base, api.WithLogger(log))
	h.service = directory.New(client, h.overlay, h, browserDialogs{}, log)

	go h.service.LoadPeople(ctx)
	go h.service.LoadStats(ctx)

	h.updateStatus(ctx)
	h.stopTick = make(chan struct{})
	h.ticker = time.NewTicker(statusPollInterval)
	go func() {
		for {
			select {
			case <-h.ticker.C:
				ctx.Dispatch(func(ctx app.Context) {
					h.updateStatus(ctx)
				})
			case <-h.stopTick:
				return
			}
		}
	}()
}

func (h *Home) OnDismount() {
	if h.ticker != nil {
		h.ticker.Stop()
		close(h.stopTick)
		h.ticker = nil
	}
	if h.overlay != nil {
		h.overlay.SetListener(nil)
	}
}

func (h *Home) dispatch(fn func()) {
	if h.savedContext == nil {
		fn()
		return
	}
	h.savedContext.Dispatch(func(ctx app.Context) {
		fn()
		h.Update()
	})
}

func (h *Home) updateStatus(ctx app.Context) {
	go func() {
		status, err := fetchStatus(ctx)
		if err != nil {
			logger.Debug("status poll failed: %v", err)
			return
		}
		ctx.Dispatch(func(ctx app.Context) {
			h.Status = status
			h.Update()
		})
	}()
}

// directory.View

func (h *Home) ShowPeople(people []api.Person) {
	h.dispatch(func() { h.People = people })
}

func (h *Home) ShowStats(stats api.Stats) {
	h.dispatch(func() { h.Stats = stats })
}

func (h *Home) ShowSearchResults(interest string, people []api.Person) {
	h.dispatch(func() {
		h.SearchInterest = interest
		h.SearchResults = people
		h.Searched = true
	})
}

func (h *Home) ShowDetails(d directory.Details) {
	h.dispatch(func() { h.Details = &d })
}

func (h *Home) ShowNetwork(name string, people []api.Person) {
	h.dispatch(func() {
		h.NetworkName = name
		h.Network = people
		h.NetworkOpen = true
	})
}

func (h *Home) ShowPath(from, to int64, path api.Path) {
	h.dispatch(func() { h.Path = &path })
}

func (h *Home) ResetForm() {
	h.dispatch(func() { h.Form = directory.PersonForm{} })
}

// Event handlers

func (h *Home) toggleTheme(ctx app.Context, e app.Event) {
	h.Theme = switchTheme(ctx, h.Theme)
	h.Update()
}

func (h *Home) toggleSidebar(ctx app.Context, e app.Event) {
	h.SidebarOpen = !h.SidebarOpen
	h.Update()
}

func (h *Home) closeSidebar(ctx app.Context, e app.Event) {
	if h.SidebarOpen {
		h.SidebarOpen = false
		h.Update()
	}
}

func (h *Home) refresh(ctx app.Context, e app.Event) {
	go h.service.Refresh(ctx)
}

func (h *Home) addPerson(ctx app.Context, e app.Event) {
	e.PreventDefault()
	form := h.Form
	go h.service.AddPerson(ctx, form)
}

func (h *Home) search(ctx app.Context, e app.Event) {
	e.PreventDefault()
	interest := h.SearchInput
	go h.service.Search(ctx, interest)
}

func (h *Home) connect(ctx app.Context, e app.Event) {
	from, to := parseID(h.ConnectFrom), parseID(h.ConnectTo)
	go h.service.Connect(ctx, from, to)
}

func (h *Home) findPath(ctx app.Context, e app.Event) {
	from, to := parseID(h.ConnectFrom), parseID(h.ConnectTo)
	h.Path = nil
	go h.service.FindPath(ctx, from, to)
}

func (h *Home) openDetails(ctx app.Context, id int64) {
	go h.service.ShowDetails(ctx, id)
}

func (h *Home) openNetwork(ctx app.Context, e app.Event) {
	if h.Details == nil {
		return
	}
	p := h.Details.Person
	go h.service.ShowNetwork(ctx, p.ID, p.Name)
}

func (h *Home) closeDetails(ctx app.Context, e app.Event) {
	h.Details = nil
	h.Update()
}

func (h *Home) closeNetwork(ctx app.Context, e app.Event) {
	h.NetworkOpen = false
	h.Update()
}

func (h *Home) Render() app.UI {
	return app.Div().Class("app-layout").Body(
		app.If(h.SidebarOpen,
			app.Div().Class("sidebar-backdrop").OnClick(h.closeSidebar),
		),
		&Sidebar{
			Uptime:        h.Status.UptimeString,
			APIReachable:  h.Status.APIReachable,
			APIBaseURL:    h.Status.APIBaseURL,
			Active:        "/",
			Theme:         h.Theme,
			IsOpen:        h.SidebarOpen,
			OnToggleTheme: h.toggleTheme,
		},
		app.Div().Class("main-content").Body(
			app.Div().Class("top-bar").Body(
				app.Button().Class("btn-icon mobile-only").OnClick(h.toggleSidebar).Body(
					app.Span().Class("material-symbols-rounded").Text("menu"),
				),
				app.Div().Body(
					app.H1().Class("page-title").Text("People"),
					app.Span().Class("page-subtitle").Text("Who knows whom, and what they like"),
				),
				app.Button().Class("btn-refresh").Title("Refresh").OnClick(h.refresh).Body(
					app.Span().Class("material-symbols-rounded").Text("refresh"),
					app.Text("Refresh"),
				),
			),
			h.renderStats(),
			app.Div().Class("panels").Body(
				h.renderForm(),
				h.renderSearch(),
				h.renderConnect(),
			),
			h.renderPeople(),
		),
		app.If(h.Details != nil, h.renderDetailsModal()),
		app.If(h.NetworkOpen, h.renderNetworkModal()),
		&LoadingOverlay{State: h.Overlay},
	)
}

func (h *Home) renderStats() app.UI {
	return app.Div().Class("stats-grid").ID("stats-content").Body(
		&StatCard{
			Title: "People",
			Value: strconv.Itoa(h.Stats.TotalPeople),
			Icon:  "group",
		},
		&StatCard{
			Title:  "Relationships",
			Value:  strconv.Itoa(h.Stats.TotalRelationships),
			Icon:   "share",
			Accent: "var(--md-sys-color-success)",
		},
		&StatCard{
			Title:  "Density",
			Value:  formatDensity(h.Stats.Density),
			Detail: topCitiesLabel(h.Stats.TopCities),
			Icon:   "hub",
			Accent: "#FBC02D",
		},
		app.If(len(h.Stats.TopInterests) > 0,
			app.Div().Class("stat-card").Body(
				app.Div().Class("stat-label").Text("Popular interests"),
				app.Div().Class("stat-sub").Text(topInterestsLabel(h.Stats.TopInterests)),
			),
		),
	)
}

func (h *Home) renderPeople() app.UI {
	return app.Div().Class("repo-panel").Body(
		app.H2().Class("section-title").Text("Everyone"),
		app.If(len(h.People) == 0,
			app.P().Text("No one registered yet."),
		).Else(
			app.Div().Class("pessoas-grid").ID("pessoas-list").Body(
				app.Range(h.People).Slice(func(i int) app.UI {
					return &PersonCard{Person: h.People[i], OnOpen: h.openDetails}
				}),
			),
		),
	)
}

func (h *Home) renderForm() app.UI {
	return app.Form().Class("repo-panel").ID("pessoa-form").OnSubmit(h.addPerson).Body(
		app.H2().Class("section-title").Text("Add person"),
		app.Label().For("nome").Text("Name"),
		app.Input().ID("nome").Type("text").Required(true).
			Value(h.Form.Name).OnChange(h.ValueTo(&h.Form.Name)),
		app.Label().For("idade").Text("Age"),
		app.Input().ID("idade").Type("number").Min(0).Max(150).Required(true).
			Value(h.Form.Age).OnChange(h.ValueTo(&h.Form.Age)),
		app.Label().For("cidade").Text("City"),
		app.Input().ID("cidade").Type("text").
			Value(h.Form.City).OnChange(h.ValueTo(&h.Form.City)),
		app.Label().For("interesses").Text("Interests (comma separated)"),
		app.Input().ID("interesses").Type("text").Placeholder("music, chess, hiking").
			Value(h.Form.Interests).OnChange(h.ValueTo(&h.Form.Interests)),
		app.Button().Class("btn-primary").Type("submit").Body(
			app.Span().Class("material-symbols-rounded").Text("person_add"),
			app.Text("Add"),
		),
	)
}

func (h *Home) renderSearch() app.UI {
	return app.Div().Class("repo-panel").Body(
		app.H2().Class("section-title").Text("Search by interest"),
		app.Form().Class("search-row").OnSubmit(h.search).Body(
			app.Input().ID("busca-interesse").Type("text").Placeholder("e.g. music").
				Value(h.SearchInput).OnChange(h.ValueTo(&h.SearchInput)),
			app.Button().Class("btn-primary").Type("submit").Body(
				app.Span().Class("material-symbols-rounded").Text("search"),
			),
		),
		app.If(h.Searched,
			app.Div().ID("resultados-busca").Body(
				app.P().Body(app.Strong().Text(searchSummary(h.SearchInterest, len(h.SearchResults)))),
				app.Range(h.SearchResults).Slice(func(i int) app.UI {
					return &ConnectionItem{Person: h.SearchResults[i], OnOpen: h.openDetails}
				}),
			),
		),
	)
}

func (h *Home) renderConnect() app.UI {
	return app.Div().Class("repo-panel").Body(
		app.H2().Class("section-title").Text("Relationships"),
		h.personSelect("pessoa1", "From", &h.ConnectFrom),
		h.personSelect("pessoa2", "To", &h.ConnectTo),
		app.Div().Style("display", "flex").Style("gap", "8px").Body(
			app.Button().Class("btn-primary").OnClick(h.connect).Body(
				app.Span().Class("material-symbols-rounded").Text("link"),
				app.Text("Connect"),
			),
			app.Button().Class("btn-refresh").OnClick(h.findPath).Body(
				app.Span().Class("material-symbols-rounded").Text("route"),
				app.Text("Shortest path"),
			),
		),
		app.If(h.Path != nil,
			app.P().Class("path-result").Text(h.pathText()),
		),
	)
}

func (h *Home) pathText() string {
	if h.Path == nil {
		return ""
	}
	return pathLabel(*h.Path)
}

func (h *Home) personSelect(id, label string, target *string) app.UI {
	return app.Div().Body(
		app.Label().For(id).Text(label),
		app.Select().ID(id).OnChange(h.ValueTo(target)).Body(
			app.Option().Value("").Text("Select a person"),
			app.Range(h.People).Slice(func(i int) app.UI {
				p := h.People[i]
				value := strconv.FormatInt(p.ID, 10)
				return app.Option().Value(value).Selected(value == *target).Text(p.Name)
			}),
		),
	)
}
