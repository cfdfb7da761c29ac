package httpserver

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"renthub/internal/adapters/observability"
	"renthub/internal/app"
	"renthub/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const recentSearchesShown = 5

type option struct{ Value, Label string }

var bhkOptions = []option{
	{"1", "1 BHK"}, {"2", "2 BHK"}, {"3", "3 BHK"}, {"4", "4 BHK"}, {"5", "5+ BHK"},
}

type Handlers struct {
	Form            *app.SearchForm
	Svc             *app.SearchService
	DefaultLocation string
	BrowseLimit     int
}

type pageData struct {
	Form       domain.FormInput
	BHKOptions []option
	State      app.PageState
	View       app.ResultsView
	Recent     []domain.SearchRecord
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.index)
	s.mux.Post("/search", h.search)
	s.mux.Post("/reset", h.reset)
	s.mux.Get("/browse", h.browse)
	s.mux.Route("/api", func(r chi.Router) {
		r.Use(s.cors())
		r.Post("/search", h.apiSearch)
	})
}

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, domain.FormInput{Location: h.DefaultLocation}, app.NewPage(nil))
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	in := domain.FormInput{
		Location: r.PostForm.Get("location"),
		BHK:      r.PostForm.Get("bhk"),
		MinRent:  r.PostForm.Get("minRent"),
		MaxRent:  r.PostForm.Get("maxRent"),
	}
	page := app.NewPage(nil)
	h.Form.Submit(r.Context(), in, page)
	h.render(w, r, in, page)
}

func (h *Handlers) reset(w http.ResponseWriter, r *http.Request) {
	page := app.NewPage(nil)
	h.Form.Reset(page)
	h.render(w, r, domain.FormInput{Location: h.DefaultLocation}, page)
}

func (h *Handlers) browse(w http.ResponseWriter, r *http.Request) {
	limit := h.BrowseLimit
	if ls := r.URL.Query().Get("limit"); ls != "" {
		if n, err := strconv.Atoi(ls); err == nil {
			limit = n
		} else {
			log.Debug().Str("limit", ls).Msg("ignoring non-numeric browse limit")
		}
	}
	page := app.NewPage(nil)
	h.Form.Browse(r.Context(), limit, page)
	h.render(w, r, domain.FormInput{Location: h.DefaultLocation}, page)
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, in domain.FormInput, page *app.Page) {
	data := pageData{
		Form:       in,
		BHKOptions: bhkOptions,
		State:      page.Snapshot(),
		View:       page.View(),
	}
	if h.Svc != nil {
		recent, err := h.Svc.RecentSearches(r.Context(), recentSearchesShown)
		if err != nil {
			log.Warn().Err(err).Msg("recent searches unavailable")
		}
		data.Recent = recent
	}

	// render into a buffer so a template failure can still produce a clean 500
	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		log.Error().Err(err).Msg("render page failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("failed to write page")
	}
}

// ---- JSON API ----

// looseString accepts a JSON string, number or null.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = looseString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*s = looseString(num.String())
	return nil
}

type apiSearchRequest struct {
	Location looseString `json:"location"`
	BHK      looseString `json:"bhk"`
	MinRent  looseString `json:"minRent"`
	MaxRent  looseString `json:"maxRent"`
}

type apiSearchResponse struct {
	Results []domain.Listing `json:"results"`
	Count   int              `json:"count"`
	Error   string           `json:"error,omitempty"`
	Notice  string           `json:"notice,omitempty"`
}

func (h *Handlers) apiSearch(w http.ResponseWriter, r *http.Request) {
	var req apiSearchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiSearchResponse{Results: []domain.Listing{}, Error: "invalid JSON body"})
		return
	}
	in := domain.FormInput{
		Location: string(req.Location),
		BHK:      string(req.BHK),
		MinRent:  string(req.MinRent),
		MaxRent:  string(req.MaxRent),
	}
	if _, err := domain.ParseQuery(in); err != nil {
		observability.ObserveSearch("invalid")
		writeJSON(w, http.StatusUnprocessableEntity, apiSearchResponse{Results: []domain.Listing{}, Error: err.Error()})
		return
	}

	page := app.NewPage(nil)
	h.Form.Submit(r.Context(), in, page)
	st := page.Snapshot()

	resp := apiSearchResponse{Results: st.Results, Count: len(st.Results), Error: st.Error, Notice: st.Notice}
	if resp.Results == nil {
		resp.Results = []domain.Listing{}
	}
	status := http.StatusOK
	if strings.TrimSpace(st.Error) != "" {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}
