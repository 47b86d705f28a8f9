package server

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

//go:embed templates/admin.html
var adminTemplatesFS embed.FS

var adminTmpl = template.Must(
	template.New("admin.html").
		Funcs(template.FuncMap{
			"contains": func(s, sub string) bool { return strings.Contains(s, sub) },
		}).
		ParseFS(adminTemplatesFS, "templates/admin.html"),
)

type adminPageData struct {
	Addr   string
	Routes []RouteDoc
}

func RegisterAdminUI(router *mux.Router, rr *RouteRegistry, addr string) {
	rr.Add(RouteDoc{Method: http.MethodGet, Pattern: "/_/admin", Summary: "This page"})
	rr.Add(RouteDoc{Method: http.MethodGet, Pattern: "/_/admin/routes.json", Summary: "Route list as JSON"})

	// JSON list (handy for tooling)
	router.HandleFunc("/_/admin/routes.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, rr.List())
	}).Methods(http.MethodGet)

	// HTML
	router.HandleFunc("/_/admin", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		data := adminPageData{
			Addr:   addr,
			Routes: rr.List(),
		}

		if err := adminTmpl.Execute(w, data); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
	}).Methods(http.MethodGet)
}
