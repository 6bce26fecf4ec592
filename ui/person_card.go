package ui

import (
	"strconv"

	"github.com/maxence-charriere/go-app/v9/pkg/app"

	"relman/api"
)

// PersonCard is one entry of the people grid.
type PersonCard struct {
	app.Compo
	Person api.Person
	OnOpen func(ctx app.Context, id int64)
}

func (c *PersonCard) Render() app.UI {
	p := c.Person
	return app.Div().Class("pessoa-card fade-in").ID("person-"+strconv.FormatInt(p.ID, 10)).OnClick(c.open).Body(
		app.H4().Text(p.Name),
		app.Div().Class("pessoa-info").Body(
			app.Span().Class("material-symbols-rounded").Text("cake"),
			app.Text(ageLabel(p.Age)),
		),
		app.Div().Class("pessoa-info").Body(
			app.Span().Class("material-symbols-rounded").Text("location_city"),
			app.Text(cityOrDefault(p.City)),
		),
		app.If(len(p.Interests) > 0,
			app.Div().Class("interesses").Body(
				app.Range(p.Interests).Slice(func(i int) app.UI {
					return app.Span().Class("interesse-tag").Text(p.Interests[i])
				}),
			),
		),
	)
}

func (c *PersonCard) open(ctx app.Context, e app.Event) {
	if c.OnOpen != nil {
		c.OnOpen(ctx, c.Person.ID)
	}
}

// ConnectionItem is a compact row used in the details, network and search
// lists. Note is an optional extra line.
type ConnectionItem struct {
	app.Compo
	Person api.Person
	Note   string
	OnOpen func(ctx app.Context, id int64)
}

func (r *ConnectionItem) Render() app.UI {
	return app.Div().Class("conexao-item").Body(
		app.Div().Class("conexao-info").Body(
			app.H4().Text(r.Person.Name),
			app.Div().Text(personSummary(r.Person)),
			app.If(r.Note != "",
				app.Div().Body(app.Small().Text(r.Note)),
			),
		),
		app.Button().Class("btn-refresh").OnClick(r.open).Body(
			app.Span().Class("material-symbols-rounded").Text("visibility"),
			app.Text("View"),
		),
	)
}

func (r *ConnectionItem) open(ctx app.Context, e app.Event) {
	e.Call("stopPropagation")
	if r.OnOpen != nil {
		r.OnOpen(ctx, r.Person.ID)
	}
}
