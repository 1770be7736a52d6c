package routes

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"pmis/handlers"
	"pmis/live"
)

type Handlers struct {
	Drafts       *handlers.DraftHandler
	Bills        *handlers.RABillHandler
	Organization *handlers.OrganizationHandler
	Live         *live.Hub
}

type Options struct {
	AllowedOrigins []string
	FilesDir       string // served under FilesPrefix when set
	FilesPrefix    string
}

// withCORS allows every origin when the list is empty, otherwise only the
// listed ones.
func withCORS(origins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case len(origins) == 0:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && slices.Contains(origins, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func SetupRoutes(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(handlers.Recover)
	r.Use(withCORS(opts.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok"}`))
	})

	if opts.FilesDir != "" {
		prefix := "/" + strings.Trim(opts.FilesPrefix, "/")
		if prefix == "/" {
			prefix = "/files"
		}
		fs := http.StripPrefix(prefix, http.FileServer(http.Dir(opts.FilesDir)))
		r.Get(prefix+"/*", fs.ServeHTTP)
	}

	r.Route("/api", func(r chi.Router) {
		// Organization setup
		r.Get("/organization", h.Organization.GetOrganization)
		r.Post("/organization", h.Organization.SaveOrganization)

		r.Route("/ra-bills", func(r chi.Router) {
			r.Get("/schema", h.Bills.Schema)
			r.Get("/categories", h.Bills.Categories)
			r.Post("/compute", h.Bills.Compute)

			// Drafts
			r.Post("/drafts", h.Drafts.CreateDraft)
			r.Get("/drafts/{id}", h.Drafts.GetDraft)
			r.Patch("/drafts/{id}", h.Drafts.UpdateDraft)
			r.Delete("/drafts/{id}", h.Drafts.DeleteDraft)
			r.Post("/drafts/{id}/generate", h.Drafts.GenerateDraft)

			// Generated bills
			r.Post("/", h.Bills.CreateBill)
			r.Get("/", h.Bills.ListBills)
			r.Get("/{billNo}", h.Bills.GetBill)
			r.Get("/{billNo}/preview", h.Bills.PreviewBill)
			r.Post("/{billNo}/pdf", h.Bills.BillPDF)
			r.Get("/{billNo}/ledger.xlsx", h.Bills.LedgerXLSX)
		})
	})

	r.Get("/ws/ra-bills/drafts/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.Live.HandleDraft(w, r, chi.URLParam(r, "id"))
	})

	return r
}
