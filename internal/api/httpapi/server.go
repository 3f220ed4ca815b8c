package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	zlog "github.com/rs/zerolog/log"

	"github.com/nufluxx/spinbox/internal/app/player"
)

// Server routes the control-surface endpoints.
type Server struct {
	coord  *player.Coordinator
	hub    *Hub
	router *mux.Router
}

// New creates a new API server around a coordinator and update hub.
func New(coord *player.Coordinator, hub *Hub) *Server {
	s := &Server{coord: coord, hub: hub, router: mux.NewRouter()}

	s.router.HandleFunc("/v1/status", s.handleStatus).Methods(http.MethodGet)
	s.router.HandleFunc("/v1/player/play", s.command(coord.Play)).Methods(http.MethodPost)
	s.router.HandleFunc("/v1/player/pause", s.command(coord.Pause)).Methods(http.MethodPost)
	s.router.HandleFunc("/v1/player/next", s.command(coord.Next)).Methods(http.MethodPost)
	s.router.HandleFunc("/v1/player/previous", s.command(coord.Previous)).Methods(http.MethodPost)
	s.router.HandleFunc("/v1/player/seek", s.handleSeek).Methods(http.MethodPost)
	s.router.HandleFunc("/v1/player/volume", s.handleVolume).Methods(http.MethodPost)
	s.router.HandleFunc("/v1/player/track", s.handleTrack).Methods(http.MethodPost)
	s.router.HandleFunc("/v1/events", s.handleEvents).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.coord.GetSnapshot())
}

// command wraps a no-argument coordinator command.
func (s *Server) command(fn func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn()
		writeJSON(w, http.StatusOK, s.coord.GetSnapshot())
	}
}

func (s *Server) handleSeek(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Fraction float64 `json:"fraction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.coord.SeekTo(req.Fraction)
	writeJSON(w, http.StatusOK, s.coord.GetSnapshot())
}

func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Volume float64 `json:"volume"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.coord.SetVolume(req.Volume)
	writeJSON(w, http.StatusOK, s.coord.GetSnapshot())
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index    int  `json:"index"`
		Autoplay bool `json:"autoplay"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.coord.SelectTrack(req.Index, req.Autoplay)
	writeJSON(w, http.StatusOK, s.coord.GetSnapshot())
}

// handleEvents streams view updates over a WebSocket connection.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		zlog.Warn().Msgf("httpapi: websocket accept failed: %v", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")

	ch := s.hub.Subscribe()
	defer s.hub.Unsubscribe(ch)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case u := <-ch:
			data, err := json.Marshal(u)
			if err != nil {
				continue
			}
			if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Debug().Msgf("httpapi: failed to encode response: %v", err)
	}
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
