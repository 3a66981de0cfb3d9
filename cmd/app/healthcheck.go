package main

import "net/http"

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	env := success("", map[string]any{
		"status": "available",
		"system_info": map[string]any{
			"environment": app.config.Environment,
			"version":     app.config.Version,
			"ai_enabled":  app.aiService.Enabled(),
		},
	})

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.logger.Error(err.Error())
		http.Error(w, "the server encountered a problem and could not process your request", http.StatusInternalServerError)
	}
}
