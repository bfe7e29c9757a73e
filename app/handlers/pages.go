package main

import (
	"fmt"
	"net/http"
)

// The dashboard frontend is served separately in production; these pages exist
// so the route guard has real routes to protect and the redirect flows can be
// exercised end to end.

func pageHandler(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<!DOCTYPE html><html><head><title>%s | PMP Master</title></head><body><h1>%s</h1></body></html>", title, title)
	}
}

func (app *application) homePageHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	pageHandler("PMP Master")(w, r)
}
