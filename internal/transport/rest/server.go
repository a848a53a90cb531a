// Package rest serves the operational HTTP endpoints: liveness and a small
// status snapshot.
package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type connectionCounter interface {
	Active() int
}

type roomCounter interface {
	Count() int
}

type Server struct {
	connections connectionCounter
	rooms       roomCounter
}

func New(connections connectionCounter, rooms roomCounter) *Server {
	return &Server{
		connections: connections,
		rooms:       rooms,
	}
}

func (that *Server) Start(port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", pingHandler)
	mux.HandleFunc("/status", that.statusHandler)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Server) statusHandler(w http.ResponseWriter, _ *http.Request) {
	status := struct {
		Connections int `json:"connections"`
		Rooms       int `json:"rooms"`
	}{
		Connections: that.connections.Active(),
		Rooms:       that.rooms.Count(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
