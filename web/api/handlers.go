package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"status":  "ok",
			"phases":  len(s.phases),
			"clients": s.hub.ClientCount(),
		})
	}
}

type phaseInfo struct {
	Name      string   `json:"name"`
	Order     int      `json:"order"`
	Required  bool     `json:"required"`
	DependsOn []string `json:"depends_on,omitempty"`
	Agents    int      `json:"agents"`
	Status    string   `json:"status"`
}

func (s *Server) phasesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]phaseInfo, 0, len(s.phases))
		for _, p := range s.phases {
			info := phaseInfo{
				Name:      p.Name,
				Order:     p.Order,
				Required:  p.Required,
				DependsOn: p.DependsOn,
				Status:    string(p.Status),
			}
			if p.Coordinator != nil {
				info.Agents = len(p.Coordinator.Agents())
			}
			out = append(out, info)
		}
		writeJSON(w, out)
	}
}

func (s *Server) listReportsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil {
			writeError(w, http.StatusServiceUnavailable, "no report store configured")
			return
		}
		runs, err := s.store.ListRecent(20)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, runs)
	}
}

func (s *Server) getReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil {
			writeError(w, http.StatusServiceUnavailable, "no report store configured")
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/reports/")
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing commission id")
			return
		}
		report, err := s.store.GetReport(id)
		if err != nil {
			writeError(w, http.StatusNotFound, "commission not found")
			return
		}
		writeJSON(w, report)
	}
}

func (s *Server) quickHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		if s.quick == nil {
			writeError(w, http.StatusServiceUnavailable, "no pipeline configured")
			return
		}
		result := s.quick.RunQuickCheck(r.Context(), nil)
		s.hub.Broadcast(Event{Type: "quick_check", Data: result})
		writeJSON(w, result)
	}
}

func (s *Server) wsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("websocket upgrade: %v", err)
			return
		}

		client := s.hub.Subscribe()
		defer s.hub.Unsubscribe(client)
		defer conn.Close()

		// Drain reads so pings and close frames are processed.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for event := range client {
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}
