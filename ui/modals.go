package ui

import (
	"fmt"

	"github.com/maxence-charriere/go-app/v9/pkg/app"

	"relman/api"
)

func stopPropagation(ctx app.Context, e app.Event) {
	e.Call("stopPropagation")
}

func modalHeader(icon, title string, onClose app.EventHandler) app.UI {
	return app.Div().Class("modal-header").Body(
		app.H2().Style("display", "flex").Style("align-items", "center").Body(
			app.Span().Class("material-symbols-rounded").Style("margin-right", "12px").Text(icon),
			app.Text(title),
		),
		app.Button().Class("modal-close").OnClick(onClose).Body(
			app.Span().Class("material-symbols-rounded").Text("close"),
		),
	)
}

func (h *Home) connectionList(people []api.Person, empty string) app.UI {
	if len(people) == 0 {
		return app.P().Text(empty)
	}
	return app.Div().Class("amigos-list").Body(
		app.Range(people).Slice(func(i int) app.UI {
			return &ConnectionItem{Person: people[i], OnOpen: h.openDetails}
		}),
	)
}

func (h *Home) renderDetailsModal() app.UI {
	if h.Details == nil {
		return app.Div()
	}
	d := h.Details
	p := d.Person

	return app.Div().Class("modal-overlay").ID("pessoa-detalhes").OnClick(h.closeDetails).Body(
		app.Div().Class("modal-content").OnClick(stopPropagation).
			Style("width", "720px").
			Style("max-width", "95vw").
			Body(
				modalHeader("person", "Details: "+p.Name, h.closeDetails),
				app.Div().Class("modal-body").Body(
					app.Div().Class("detalhes-section").Body(
						app.H4().Text("Information"),
						app.P().Body(app.Strong().Text("Age: "), app.Text(ageLabel(p.Age))),
						app.P().Body(app.Strong().Text("City: "), app.Text(cityOrDefault(p.City))),
						app.P().Body(app.Strong().Text("Interests: "), app.Text(joinOrNone(p.Interests))),
					),
					app.Div().Class("detalhes-section").Body(
						app.H4().Text(fmt.Sprintf("Friends (%d)", len(d.Friends))),
						h.connectionList(d.Friends, "No friends found."),
					),
					app.Div().Class("detalhes-section").Body(
						app.H4().Text("Similar people"),
						app.If(len(d.Similar) == 0,
							app.P().Text("No similar people found."),
						).Else(
							app.Div().Class("similares-list").Body(
								app.Range(d.Similar).Slice(func(i int) app.UI {
									s := d.Similar[i]
									return &ConnectionItem{
										Person: s.Person,
										Note:   similarNote(s),
										OnOpen: h.openDetails,
									}
								}),
							),
						),
					),
					app.If(len(d.Recommendations) > 0,
						app.Div().Class("detalhes-section").Body(
							app.H4().Text("People they may know"),
							h.connectionList(d.Recommendations, ""),
						),
					),
					app.Div().Class("detalhes-section").Body(
						app.H4().Text(fmt.Sprintf("Nearby network (%d)", len(d.Network))),
					),
					app.Div().Class("detalhes-actions").Body(
						app.Button().Class("btn-refresh").OnClick(h.openNetwork).Body(
							app.Span().Class("material-symbols-rounded").Text("lan"),
							app.Text("View social network"),
						),
					),
				),
			),
	)
}

func (h *Home) renderNetworkModal() app.UI {
	summary := "No connections found in the network."
	if n := len(h.Network); n > 0 {
		summary = fmt.Sprintf("%d connections found in the network:", n)
	}

	return app.Div().Class("modal-overlay").ID("rede-social").OnClick(h.closeNetwork).Body(
		app.Div().Class("modal-content").OnClick(stopPropagation).
			Style("width", "720px").
			Style("max-width", "95vw").
			Body(
				modalHeader("lan", "Social network: "+h.NetworkName, h.closeNetwork),
				app.Div().Class("modal-body").Body(
					app.P().Body(app.Strong().Text(summary)),
					app.Range(h.Network).Slice(func(i int) app.UI {
						p := h.Network[i]
						note := ""
						if len(p.Interests) > 0 {
							note = "Interests: " + joinOrNone(p.Interests)
						}
						return &ConnectionItem{Person: p, Note: note, OnOpen: h.openDetails}
					}),
				),
			),
	)
}

func similarNote(s api.SimilarPerson) string {
	note := "Common interests: " + joinOrNone(s.CommonInterests)
	if s.Score > 0 {
		note += fmt.Sprintf(" (score %d)", s.Score)
	}
	return note
}
