package main

import (
	"github.com/maxence-charriere/go-app/v9/pkg/app"

	"relman/ui"
)

func main() {
	ui.Routes()
	app.RunWhenOnBrowser()
}
