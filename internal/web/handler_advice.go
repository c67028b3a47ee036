package web

import (
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/bhorvath/carwise/internal/advisor"
	"github.com/bhorvath/carwise/internal/auth"
	"github.com/bhorvath/carwise/internal/service"
)

const maxPhotoSize = 50 * 1024 * 1024 // 50 MB

// allowedImageTypes is the set of MIME types accepted for uploaded photos.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing. WebP is detected separately because the WHATWG sniff spec (and
// therefore the stdlib) does not include a WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// allowedImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

// formPhoto reads the optional "photo" multipart field. A missing field is
// not an error; an unreadable or non-image file is.
func (s *Server) formPhoto(r *http.Request) (*advisor.InlinePhoto, error) {
	file, _, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer closeWithLog(file, "photo upload", s.logger)

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	mimeType, ok := allowedImageMIME(data)
	if !ok {
		return nil, errors.New("unsupported image format")
	}
	return &advisor.InlinePhoto{Data: data, MimeType: mimeType}, nil
}

func (s *Server) handleQuotePage(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	cars, err := s.garage.ListCars(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "failed to list cars", http.StatusInternalServerError)
		log.Printf("list cars error: %v", err)
		return
	}

	if err := s.renderPage(w,
		map[string]any{"User": user, "Cars": cars, "ActiveNav": "quote"},
		"base.html", "pages/quote.html",
	); err != nil {
		log.Printf("render page error: %v", err)
	}
}

func (s *Server) handleAnalyzeQuote(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	description := strings.TrimSpace(r.FormValue("description"))
	if description == "" {
		http.Error(w, "description required", http.StatusBadRequest)
		return
	}

	photo, err := s.formPhoto(r)
	if err != nil {
		http.Error(w, "unsupported image", http.StatusBadRequest)
		return
	}

	var carID int64
	if raw := r.FormValue("car_id"); raw != "" {
		carID, _ = strconv.ParseInt(raw, 10, 64)
	}

	analysis, err := s.garage.AnalyzeQuote(r.Context(), user.ID, carID, advisor.QuoteRequest{
		Description: description,
		PriceHUF:    strings.TrimSpace(r.FormValue("price_huf")),
		Mileage:     strings.TrimSpace(r.FormValue("mileage")),
		Photo:       photo,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		http.Error(w, "analysis failed", http.StatusInternalServerError)
		log.Printf("quote analysis error: %v", err)
		return
	}

	if err := s.renderPartial(w, "partials/quote_result.html", analysis); err != nil {
		log.Printf("render partial error: %v", err)
	}
}

func (s *Server) handleDiagnosePage(w http.ResponseWriter, r *http.Request) {
	if err := s.renderPage(w,
		map[string]any{"ActiveNav": "diagnose"},
		"base.html", "pages/diagnose.html",
	); err != nil {
		log.Printf("render page error: %v", err)
	}
}

func (s *Server) handleDiagnose(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	description := strings.TrimSpace(r.FormValue("description"))
	if description == "" {
		http.Error(w, "description required", http.StatusBadRequest)
		return
	}

	photo, err := s.formPhoto(r)
	if err != nil {
		http.Error(w, "unsupported image", http.StatusBadRequest)
		return
	}

	diagnosis, err := s.garage.Diagnose(r.Context(), advisor.DiagnosisRequest{
		Description: description,
		Photo:       photo,
	})
	if err != nil {
		http.Error(w, "diagnosis failed", http.StatusInternalServerError)
		log.Printf("diagnosis error: %v", err)
		return
	}

	if err := s.renderPartial(w, "partials/diagnosis_result.html", diagnosis); err != nil {
		log.Printf("render partial error: %v", err)
	}
}

func (s *Server) handleAdPage(w http.ResponseWriter, r *http.Request) {
	if err := s.renderPage(w,
		map[string]any{"ActiveNav": "ads"},
		"base.html", "pages/ads.html",
	); err != nil {
		log.Printf("render page error: %v", err)
	}
}

const maxAdTextLen = 20000

func (s *Server) handleAnalyzeAd(w http.ResponseWriter, r *http.Request) {
	adText := strings.TrimSpace(r.FormValue("ad_text"))
	if adText == "" {
		http.Error(w, "ad text required", http.StatusBadRequest)
		return
	}
	if len(adText) > maxAdTextLen {
		http.Error(w, "ad text too long", http.StatusBadRequest)
		return
	}

	analysis, err := s.garage.AnalyzeAd(r.Context(), adText)
	if err != nil {
		http.Error(w, "analysis failed", http.StatusInternalServerError)
		log.Printf("ad analysis error: %v", err)
		return
	}

	if err := s.renderPartial(w, "partials/ad_result.html", analysis); err != nil {
		log.Printf("render partial error: %v", err)
	}
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	carID, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid car id", http.StatusBadRequest)
		return
	}

	forecast, err := s.garage.PredictCosts(r.Context(), user.ID, carID, strings.TrimSpace(r.FormValue("mileage")))
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		http.Error(w, "forecast failed", http.StatusInternalServerError)
		log.Printf("cost forecast error: %v", err)
		return
	}

	if err := s.renderPartial(w, "partials/forecast_result.html", forecast); err != nil {
		log.Printf("render partial error: %v", err)
	}
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
