package main

import (
	"net/http"

	"github.com/a-h/templ"
)

func pageHandler(title, text string) http.Handler {
	return templ.Handler(page(title, text))
}
