package main

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/communitycal/api/handlers"
	"github.com/communitycal/api/helpers"
	"github.com/communitycal/api/services"
	"github.com/communitycal/api/transport"
	"github.com/communitycal/api/types"
)

type AuthType string

const (
	None    AuthType = "none"
	Require AuthType = "require"
)

type Route struct {
	Path    string
	Method  string
	Handler http.HandlerFunc
	Auth    AuthType
}

type App struct {
	Router *mux.Router
	Cfg    *helpers.Config
}

func NewApp(cfg *helpers.Config, db types.PostgresDBAPI, eventService types.EventServiceInterface) *App {
	app := &App{
		Router: mux.NewRouter(),
		Cfg:    cfg,
	}

	eventHandler := handlers.NewEventHandler(eventService, db, cfg)
	pageHandler := handlers.NewPageHandler(eventService, db, cfg)

	// The feed is public by default; some deployments gate it too.
	feedAuth := None
	if cfg.FeedRequireAuth {
		feedAuth = Require
	}

	routes := []Route{
		{"/add-event", "POST", eventHandler.CreateEvent, Require},
		{"/events.ics", "GET", eventHandler.GetCalendar, feedAuth},
		{"/events", "GET", eventHandler.GetEvents, Require},
		{"/events/{id}", "GET", eventHandler.GetEvent, Require},
		{"/events/{id}", "DELETE", eventHandler.DeleteEvent, Require},
		{"/cleanup", "POST", eventHandler.Cleanup, Require},
		{"/submit-event", "GET", pageHandler.GetSubmitEventPage, Require},
		{"/submit-event", "POST", pageHandler.PostSubmitEventForm, Require},
	}

	app.SetupRoutes(routes)
	app.SetupNotFoundHandler()
	return app
}

func (app *App) SetupRoutes(routes []Route) {
	for _, route := range routes {
		app.addRoute(route)
	}
}

func (app *App) addRoute(route Route) {
	handler := route.Handler
	if route.Auth == Require {
		handler = app.requireBasicAuth(route.Handler)
	}
	app.Router.HandleFunc(route.Path, handler).Methods(route.Method)
}

// requireBasicAuth gates a route behind the shared credential pair. Both
// comparisons run in constant time regardless of which one mismatches.
func (app *App) requireBasicAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(app.Cfg.AuthUsername)) == 1
		passwordMatch := subtle.ConstantTimeCompare([]byte(password), []byte(app.Cfg.AuthPassword)) == 1
		if !ok || !usernameMatch || !passwordMatch {
			w.Header().Set("WWW-Authenticate", `Basic realm="restricted"`)
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	}
}

func (app *App) SetupNotFoundHandler() {
	app.Router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Println("Not found", r.RequestURI)
		http.Error(w, "Not found: "+r.RequestURI, http.StatusNotFound)
	})
}

func main() {
	cfg, err := helpers.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	pool, err := transport.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer pool.Close()

	if err := transport.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	app := NewApp(cfg, pool, services.NewEventService())

	log.Printf("%s listening on :%s", cfg.AppTitle, cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, app.Router); err != nil {
		log.Fatal(err)
	}
}
