package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bhorvath/carwise/internal/auth"
	"github.com/bhorvath/carwise/internal/service"
)

type Server struct {
	garage          *service.GarageService
	auth            *auth.Auth
	templates       embed.FS
	mux             *http.ServeMux
	tmplFuncs       template.FuncMap
	logger          *slog.Logger
	defaultRadiusKm int
}

func NewServer(garage *service.GarageService, a *auth.Auth, tmpl embed.FS, defaultRadiusKm int, logger *slog.Logger) *Server {
	s := &Server{
		garage:          garage,
		auth:            a,
		templates:       tmpl,
		mux:             http.NewServeMux(),
		logger:          logger,
		defaultRadiusKm: defaultRadiusKm,
		tmplFuncs: template.FuncMap{
			"huf": formatHUF,
			"inc": func(i int) int { return i + 1 },
			// Action targets come out of recommend.SafeURL / recommend.TelURL,
			// which already constrain the scheme. html/template would otherwise
			// reject tel: links.
			"trustedURL": func(s string) template.URL { return template.URL(s) },
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.Handle("GET /", s.auth.OptionalUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if auth.UserFrom(r.Context()) != nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})))

	s.mux.HandleFunc("GET /login", s.handleLoginPage)
	s.mux.HandleFunc("POST /login", s.handleLogin)
	s.mux.HandleFunc("GET /register", s.handleRegisterPage)
	s.mux.HandleFunc("POST /register", s.handleRegister)
	s.mux.HandleFunc("POST /logout", s.handleLogout)

	s.mux.Handle("GET /dashboard", s.auth.RequireUser(http.HandlerFunc(s.handleDashboard)))
	s.mux.Handle("POST /cars", s.auth.RequireUser(http.HandlerFunc(s.handleCreateCar)))
	s.mux.Handle("GET /cars/{id}", s.auth.RequireUser(http.HandlerFunc(s.handleCarDetail)))
	s.mux.Handle("DELETE /cars/{id}", s.auth.RequireUser(http.HandlerFunc(s.handleDeleteCar)))
	s.mux.Handle("POST /cars/{id}/records", s.auth.RequireUser(http.HandlerFunc(s.handleAddRecord)))
	s.mux.Handle("DELETE /records/{id}", s.auth.RequireUser(http.HandlerFunc(s.handleDeleteRecord)))
	s.mux.Handle("POST /cars/{id}/predict", s.auth.RequireUser(http.HandlerFunc(s.handlePredict)))

	s.mux.Handle("GET /mechanics", s.auth.RequireUser(http.HandlerFunc(s.handleMechanicsPage)))
	s.mux.Handle("POST /search/mechanics", s.auth.RequireUser(http.HandlerFunc(s.handleSearchMechanics)))
	s.mux.Handle("POST /search/mechanics/stream", s.auth.RequireUser(http.HandlerFunc(s.handleStreamMechanics)))

	s.mux.Handle("GET /quote", s.auth.RequireUser(http.HandlerFunc(s.handleQuotePage)))
	s.mux.Handle("POST /analyze/quote", s.auth.RequireUser(http.HandlerFunc(s.handleAnalyzeQuote)))
	s.mux.Handle("GET /diagnose", s.auth.RequireUser(http.HandlerFunc(s.handleDiagnosePage)))
	s.mux.Handle("POST /diagnose", s.auth.RequireUser(http.HandlerFunc(s.handleDiagnose)))
	s.mux.Handle("GET /ads", s.auth.RequireUser(http.HandlerFunc(s.handleAdPage)))
	s.mux.Handle("POST /analyze/ad", s.auth.RequireUser(http.HandlerFunc(s.handleAnalyzeAd)))
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src 'self' 'unsafe-inline' https://unpkg.com; "+
				"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; "+
				"font-src https://fonts.gstatic.com; "+
				"img-src 'self' data:; "+
				"connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

// renderPage parses and executes a full-page template set.
func (s *Server) renderPage(w http.ResponseWriter, data any, files ...string) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, files...)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tmpl.ExecuteTemplate(w, "base", data)
}

// renderPartial parses and executes a single named partial template.
// The file must contain exactly one {{define "name"}}...{{end}} block.
func (s *Server) renderPartial(w http.ResponseWriter, file string, data any) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, file)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// ParseFS registers both the file-basename template and any {{define}} blocks.
	// Find the {{define}} template: it is the one whose name is neither "" nor
	// the file basename.
	basename := file
	if idx := strings.LastIndexByte(file, '/'); idx >= 0 {
		basename = file[idx+1:]
	}
	for _, t := range tmpl.Templates() {
		if n := t.Name(); n != "" && n != basename {
			return t.Execute(w, data)
		}
	}
	// Fallback: execute the file-basename template (no {{define}} blocks found).
	return tmpl.ExecuteTemplate(w, basename, data)
}

// formatHUF renders a forint amount with thousands separators, e.g.
// 1234567 -> "1 234 567 Ft".
func formatHUF(amount int64) string {
	digits := []byte{}
	n := amount
	if n == 0 {
		return "0 Ft"
	}
	for i := 0; n > 0; i++ {
		if i > 0 && i%3 == 0 {
			digits = append([]byte{' '}, digits...)
		}
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits) + " Ft"
}
