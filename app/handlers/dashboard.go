package main

import (
	"net/http"
)

func (app *application) dashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, appErr := app.dashboardService.Stats(r.Context())
	if appErr != nil {
		writeErrorResponse(w, appErr)
		return
	}
	writeData(w, http.StatusOK, stats)
}
