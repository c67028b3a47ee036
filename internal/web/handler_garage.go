package web

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bhorvath/carwise/internal/auth"
	"github.com/bhorvath/carwise/internal/service"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())

	cars, err := s.garage.ListCars(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "failed to list cars", http.StatusInternalServerError)
		log.Printf("list cars error: %v", err)
		return
	}

	if err := s.renderPage(w,
		map[string]any{"User": user, "Cars": cars, "ActiveNav": "garage"},
		"base.html", "pages/dashboard.html", "partials/car_card.html",
	); err != nil {
		log.Printf("render page error: %v", err)
	}
}

const maxFieldLen = 200

func (s *Server) handleCreateCar(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())

	carMake := strings.TrimSpace(r.FormValue("make"))
	model := strings.TrimSpace(r.FormValue("model"))
	if carMake == "" || model == "" {
		http.Error(w, "make and model required", http.StatusBadRequest)
		return
	}
	if len(carMake) > maxFieldLen || len(model) > maxFieldLen {
		http.Error(w, "field too long", http.StatusBadRequest)
		return
	}

	car, err := s.garage.CreateCar(r.Context(), user.ID, carMake, model,
		strings.TrimSpace(r.FormValue("year")),
		strings.TrimSpace(r.FormValue("plate")),
		strings.TrimSpace(r.FormValue("color")),
	)
	if err != nil {
		http.Error(w, "failed to create car", http.StatusInternalServerError)
		log.Printf("create car error: %v", err)
		return
	}

	if err := s.renderPartial(w, "partials/car_card.html", car); err != nil {
		log.Printf("render partial error: %v", err)
	}
}

func (s *Server) handleCarDetail(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	carID, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid car id", http.StatusBadRequest)
		return
	}

	detail, err := s.garage.GetCarDetail(r.Context(), user.ID, carID)
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		http.Error(w, "failed to get car", http.StatusInternalServerError)
		log.Printf("get car error: %v", err)
		return
	}
	if detail == nil {
		http.NotFound(w, r)
		return
	}

	if err := s.renderPage(w,
		map[string]any{"User": user, "Car": detail, "ActiveNav": "garage"},
		"base.html", "pages/car_detail.html", "partials/record_list.html",
	); err != nil {
		log.Printf("render page error: %v", err)
	}
}

func (s *Server) handleDeleteCar(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	carID, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid car id", http.StatusBadRequest)
		return
	}

	if err := s.garage.DeleteCar(r.Context(), user.ID, carID); err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		http.Error(w, "failed to delete car", http.StatusInternalServerError)
		log.Printf("delete car error: %v", err)
		return
	}

	w.Header().Set("HX-Redirect", "/dashboard")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleAddRecord(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	carID, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid car id", http.StatusBadRequest)
		return
	}

	description := strings.TrimSpace(r.FormValue("description"))
	if description == "" {
		http.Error(w, "description required", http.StatusBadRequest)
		return
	}

	happenedOn, err := time.Parse("2006-01-02", r.FormValue("happened_on"))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	var costHUF int64
	if raw := strings.TrimSpace(r.FormValue("cost_huf")); raw != "" {
		costHUF, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || costHUF < 0 {
			http.Error(w, "invalid cost", http.StatusBadRequest)
			return
		}
	}

	_, err = s.garage.AddServiceRecord(r.Context(), user.ID, carID, happenedOn,
		strings.TrimSpace(r.FormValue("shop_name")), description, costHUF)
	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		http.Error(w, "failed to add record", http.StatusInternalServerError)
		log.Printf("add record error: %v", err)
		return
	}

	detail, err := s.garage.GetCarDetail(r.Context(), user.ID, carID)
	if err != nil || detail == nil {
		http.Error(w, "failed to get car", http.StatusInternalServerError)
		return
	}
	if err := s.renderPartial(w, "partials/record_list.html", detail); err != nil {
		log.Printf("render partial error: %v", err)
	}
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	recordID, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid record id", http.StatusBadRequest)
		return
	}

	if err := s.garage.DeleteServiceRecord(r.Context(), user.ID, recordID); err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		http.Error(w, "failed to delete record", http.StatusInternalServerError)
		log.Printf("delete record error: %v", err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// parseID extracts the {id} path variable and returns it as int64.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
