package web

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/bhorvath/carwise/internal/auth"
)

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if err := s.renderPage(w,
		map[string]any{"ActiveNav": "login"},
		"base.html", "pages/login.html",
	); err != nil {
		log.Printf("render page error: %v", err)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		http.Error(w, "email and password required", http.StatusBadRequest)
		return
	}

	_, session, err := s.auth.Login(r.Context(), email, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		if err := s.renderPage(w,
			map[string]any{"Error": "Invalid email or password.", "Email": email, "ActiveNav": "login"},
			"base.html", "pages/login.html",
		); err != nil {
			log.Printf("render page error: %v", err)
		}
		return
	}
	if err != nil {
		http.Error(w, "login failed", http.StatusInternalServerError)
		log.Printf("login error: %v", err)
		return
	}

	auth.SetCookie(w, session)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	if err := s.renderPage(w,
		map[string]any{"ActiveNav": "register"},
		"base.html", "pages/register.html",
	); err != nil {
		log.Printf("render page error: %v", err)
	}
}

const minPasswordLen = 8

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	name := strings.TrimSpace(r.FormValue("name"))
	password := r.FormValue("password")

	var problem string
	switch {
	case email == "" || !strings.Contains(email, "@"):
		problem = "A valid email address is required."
	case len(password) < minPasswordLen:
		problem = "Password must be at least 8 characters."
	}
	if problem != "" {
		if err := s.renderPage(w,
			map[string]any{"Error": problem, "Email": email, "Name": name, "ActiveNav": "register"},
			"base.html", "pages/register.html",
		); err != nil {
			log.Printf("render page error: %v", err)
		}
		return
	}

	_, session, err := s.auth.Register(r.Context(), email, name, password)
	if err != nil {
		if err := s.renderPage(w,
			map[string]any{"Error": "Could not create the account. The email may already be registered.", "Email": email, "Name": name, "ActiveNav": "register"},
			"base.html", "pages/register.html",
		); err != nil {
			log.Printf("render page error: %v", err)
		}
		return
	}

	auth.SetCookie(w, session)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookie); err == nil {
		if err := s.auth.Logout(r.Context(), cookie.Value); err != nil {
			log.Printf("logout error: %v", err)
		}
	}
	auth.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
