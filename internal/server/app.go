package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/HadleysDad/loot-api/internal/config"
	"github.com/HadleysDad/loot-api/internal/httpmw"
	"github.com/HadleysDad/loot-api/internal/table"

	_ "github.com/HadleysDad/loot-api/docs"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// App holds the state shared by every handler: the parsed
// configuration and the base loot table loaded at boot. Handlers treat
// the base table as read-only; operations that change a table return a
// transformed copy in the response instead.
type App struct {
	Config  *config.Config
	BaseRaw any
	Base    table.Table
	BaseRes table.Result

	BootNow time.Time
}

type Options struct {
	Config    *config.Config
	TablePath string // overrides Config.Server.TablePath when set
	Logger    *log.Logger
}

// NewHandler loads and validates the base loot table, then wires up
// the full HTTP surface. A base table with validation errors is a
// refusal to boot, not a degraded mode.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	tablePath := opts.TablePath
	if tablePath == "" {
		tablePath = opts.Config.Server.TablePath
	}

	raw, err := table.LoadFile(tablePath)
	if err != nil {
		return nil, fmt.Errorf("load loot table: %w", err)
	}
	typed, res := table.Parse(raw)
	if !res.Valid {
		return nil, fmt.Errorf("loot table %s is invalid: %d validation errors", tablePath, len(res.Errors))
	}

	app := &App{
		Config:  opts.Config,
		BaseRaw: raw,
		Base:    typed,
		BaseRes: res,
		BootNow: time.Now().UTC(),
	}

	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "loot-api",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods(http.MethodGet)

	r.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		if !app.BaseRes.Valid || app.BaseRes.Summary.TotalItems == 0 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "base loot table unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "loot-api",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods(http.MethodGet)

	rr := &RouteRegistry{}
	RegisterAPIRoutes(r, rr, app)
	RegisterAdminUI(r, rr, opts.Config.Server.Addr)

	r.PathPrefix("/docs/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	return httpmw.Chain(
		r,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

// resolveTable returns the document a request operates on: the posted
// table when the body carries one, the base table otherwise. Posted
// tables are validated and parsed on the spot; the caller decides what
// an invalid result means for its endpoint.
func (app *App) resolveTable(posted any) (any, table.Table, table.Result) {
	if posted == nil {
		return app.BaseRaw, app.Base, app.BaseRes
	}
	typed, res := table.Parse(posted)
	return posted, typed, res
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
