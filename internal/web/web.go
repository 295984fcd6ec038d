// Package web carries the browser-facing assets compiled into the binary
package web

import (
	"embed"
	"log"
)

//go:embed static/*
var assets embed.FS

// IndexHTML is the interview page served while the availability window is open
func IndexHTML() []byte {
	return mustAsset("static/index.html")
}

// ClosedHTML is the page served after the availability window has passed
func ClosedHTML() []byte {
	return mustAsset("static/closed.html")
}

// AppJS is the client script driving the interview session
func AppJS() []byte {
	return mustAsset("static/app.js")
}

// mustAsset reads an embedded file. Missing assets are a build defect, so
// this fails hard instead of returning an error.
func mustAsset(name string) []byte {
	data, err := assets.ReadFile(name)
	if err != nil {
		log.Fatalf("[WEB]: Missing embedded asset %s: %v", name, err)
	}
	return data
}
