package docs

import (
	"encoding/json"
	"net/http"
)

// OpenAPISpec is a hand-maintained OpenAPI 3.0 document covering the API
// surface. Kept deliberately shallow: enough for explorers and client
// generators, not a schema-first workflow.
type OpenAPISpec struct {
	OpenAPI string                 `json:"openapi"`
	Info    Info                   `json:"info"`
	Servers []Server               `json:"servers"`
	Paths   map[string]interface{} `json:"paths"`
}

type Info struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

var spec OpenAPISpec

func init() {
	jsonOK := func(description string) map[string]interface{} {
		return map[string]interface{}{
			"description": description,
			"content": map[string]interface{}{
				"application/json": map[string]interface{}{},
			},
		}
	}
	crud := func(resource string) map[string]interface{} {
		return map[string]interface{}{
			"get": map[string]interface{}{
				"summary": "List " + resource,
				"tags":    []string{resource},
				"responses": map[string]interface{}{
					"200": jsonOK(resource + " listing"),
				},
			},
			"post": map[string]interface{}{
				"summary": "Create a " + resource + " entry",
				"tags":    []string{resource},
				"responses": map[string]interface{}{
					"201": jsonOK(resource + " created"),
					"400": jsonOK("validation failure"),
				},
			},
		}
	}
	crudByID := func(resource string) map[string]interface{} {
		return map[string]interface{}{
			"get": map[string]interface{}{
				"summary": "Get one " + resource + " entry",
				"tags":    []string{resource},
				"responses": map[string]interface{}{
					"200": jsonOK(resource),
					"404": jsonOK("not found"),
				},
			},
			"put": map[string]interface{}{
				"summary": "Update a " + resource + " entry",
				"tags":    []string{resource},
				"responses": map[string]interface{}{
					"200": jsonOK(resource + " updated"),
					"404": jsonOK("not found"),
				},
			},
			"delete": map[string]interface{}{
				"summary": "Delete a " + resource + " entry",
				"tags":    []string{resource},
				"responses": map[string]interface{}{
					"200": jsonOK(resource + " deleted"),
					"404": jsonOK("not found"),
				},
			},
		}
	}

	spec = OpenAPISpec{
		OpenAPI: "3.0.3",
		Info: Info{
			Title:       "PMP Master API",
			Description: "Project-management dashboard API: auth, projects, tasks, meetings, team",
			Version:     "1.0.0",
		},
		Servers: []Server{
			{URL: "http://localhost:8080", Description: "Local development server"},
		},
		Paths: map[string]interface{}{
			"/api/auth/register": map[string]interface{}{
				"post": map[string]interface{}{
					"summary": "Register a new user and start a session",
					"tags":    []string{"auth"},
					"responses": map[string]interface{}{
						"201": jsonOK("user and session token"),
						"400": jsonOK("missing required fields"),
						"409": jsonOK("email already in use"),
					},
				},
			},
			"/api/auth/login": map[string]interface{}{
				"post": map[string]interface{}{
					"summary": "Login with email and password",
					"tags":    []string{"auth"},
					"responses": map[string]interface{}{
						"200": jsonOK("user and session token"),
						"400": jsonOK("missing required fields"),
						"401": jsonOK("bad credentials"),
					},
				},
			},
			"/api/auth/me": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "Current user from the session cookie",
					"tags":    []string{"auth"},
					"responses": map[string]interface{}{
						"200": jsonOK("current user"),
						"401": jsonOK("missing, invalid or expired session"),
						"404": jsonOK("session user no longer exists"),
					},
				},
			},
			"/api/auth/logout": map[string]interface{}{
				"post": map[string]interface{}{
					"summary": "Clear the session cookie",
					"tags":    []string{"auth"},
					"responses": map[string]interface{}{
						"200": jsonOK("logged out"),
					},
				},
			},
			"/api/health": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "Service health and dependency checks",
					"tags":    []string{"ops"},
					"responses": map[string]interface{}{
						"200": jsonOK("healthy"),
						"503": jsonOK("a dependency is down"),
					},
				},
			},
			"/api/dashboard/stats": map[string]interface{}{
				"get": map[string]interface{}{
					"summary": "Aggregate dashboard statistics (also served at /api/dashboard)",
					"tags":    []string{"dashboard"},
					"responses": map[string]interface{}{
						"200": jsonOK("overview, recent tasks, project health"),
					},
				},
			},
			"/api/projects":      crud("projects"),
			"/api/projects/{id}": crudByID("projects"),
			"/api/tasks":         crud("tasks"),
			"/api/tasks/{id}":    crudByID("tasks"),
			"/api/meetings":      crud("meetings"),
			"/api/meetings/{id}": crudByID("meetings"),
			"/api/team":          crud("team"),
			"/api/team/{id}":     crudByID("team"),
		},
	}
}

// Handler serves the OpenAPI document as JSON.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(spec)
}
