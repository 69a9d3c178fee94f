// Command testserver runs a small in-memory stand-in for the
// application under test. It implements the two endpoints authload
// drives so the tool can be exercised end to end without a real
// deployment:
//
//	POST /client_registeration
//	POST /client_login
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

type userStore struct {
	mu         sync.Mutex
	byEmail    map[string]user
	byUsername map[string]string // username -> email
	tokens     int
}

type user struct {
	fullName string
	username string
	password string
	phone    string
}

func main() {
	port := flag.Int("port", 5000, "Listening port")
	latency := flag.Duration("latency", 0, "Artificial delay added to every response")
	flag.Parse()

	if *port <= 0 {
		log.Fatalf("port must be > 0")
	}

	store := &userStore{
		byEmail:    make(map[string]user),
		byUsername: make(map[string]string),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/client_registeration", withDelay(*latency, store.handleRegister))
	mux.HandleFunc("/client_login", withDelay(*latency, store.handleLogin))

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("test app server listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}

func withDelay(d time.Duration, next http.HandlerFunc) http.HandlerFunc {
	if d <= 0 {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(d)
		next(w, r)
	}
}

func (s *userStore) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondJSON(w, http.StatusMethodNotAllowed, map[string]any{"msg": "method not allowed"})
		return
	}
	if err := r.ParseForm(); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"msg": "malformed form body"})
		return
	}

	email := r.PostFormValue("email")
	username := r.PostFormValue("userName")
	if email == "" || username == "" || r.PostFormValue("password") == "" {
		respondJSON(w, http.StatusBadRequest, map[string]any{"msg": "email, userName and password are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[email]; ok {
		respondJSON(w, http.StatusConflict, map[string]any{"msg": "Email already registered"})
		return
	}
	if _, ok := s.byUsername[username]; ok {
		respondJSON(w, http.StatusConflict, map[string]any{"msg": "Username already taken"})
		return
	}
	s.byEmail[email] = user{
		fullName: r.PostFormValue("fullName"),
		username: username,
		password: r.PostFormValue("password"),
		phone:    r.PostFormValue("phone"),
	}
	s.byUsername[username] = email
	respondJSON(w, http.StatusCreated, map[string]any{"msg": "User Registered"})
}

func (s *userStore) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondJSON(w, http.StatusMethodNotAllowed, map[string]any{"msg": "method not allowed"})
		return
	}
	if err := r.ParseForm(); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"msg": "malformed form body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email := r.PostFormValue("email")
	if email == "" {
		email = s.byUsername[r.PostFormValue("userName")]
	}
	u, ok := s.byEmail[email]
	if !ok || u.password != r.PostFormValue("password") {
		respondJSON(w, http.StatusUnauthorized, map[string]any{"msg": "Invalid credentials"})
		return
	}

	s.tokens++
	respondJSON(w, http.StatusOK, map[string]any{
		"token": fmt.Sprintf("token-%d-%d", s.tokens, time.Now().UnixNano()),
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
