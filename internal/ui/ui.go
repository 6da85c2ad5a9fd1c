package ui

import (
	"embed"
	"io/fs"
	"net/http"
)

// content embeds the static dashboard.
//
//go:embed static/*
var content embed.FS

// Handler serves the embedded dashboard assets under /.
func Handler() http.Handler {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
