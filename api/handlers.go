package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/terrancemacgregor/wtmd-playlist-tracker/utils"
)

// envelope is the JSON shape shared by all endpoints.
type envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Count     *int        `json:"count,omitempty"`
	Message   string      `json:"message,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	body.Timestamp = time.Now().Format(time.RFC3339)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		utils.Logger.Warnf("Error encoding response: %v", err)
	}
}

func writeData(w http.ResponseWriter, data interface{}, count int) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Count: &count})
}

func writeError(w http.ResponseWriter, status int, errMsg, detail string) {
	writeJSON(w, status, envelope{Success: false, Error: errMsg, Message: detail})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	utils.Logger.Info("Manual sync triggered")
	result, err := s.coordinator.RunSync(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to sync playlist", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Playlist synchronized successfully",
		Data:    result,
	})
}

func (s *Server) handleSyncHint(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Use POST method to trigger sync",
	})
}

func (s *Server) handleSongs(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)

	switch r.URL.Query().Get("type") {
	case "top":
		days := queryInt(r, "days", 7)
		songs, err := s.store.TopSongs(days, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to fetch songs", err.Error())
			return
		}
		writeData(w, songs, len(songs))
	default:
		songs, err := s.store.RecentSongs(limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to fetch songs", err.Error())
			return
		}
		writeData(w, songs, len(songs))
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "Missing search query", "Provide a q parameter")
		return
	}
	songs, err := s.store.SearchSongs(query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to search songs", err.Error())
		return
	}
	writeData(w, songs, len(songs))
}

func (s *Server) handleDJs(w http.ResponseWriter, r *http.Request) {
	djName := r.URL.Query().Get("name")
	if djName == "" {
		stats, err := s.store.DJStats()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to fetch DJ data", err.Error())
			return
		}
		writeData(w, stats, len(stats))
		return
	}

	limit := queryInt(r, "limit", 100)
	switch r.URL.Query().Get("type") {
	case "songs":
		songs, err := s.store.SongsByDJ(djName, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to fetch DJ data", err.Error())
			return
		}
		writeData(w, songs, len(songs))
	case "artists":
		artists, err := s.store.TopArtistsByDJ(djName, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to fetch DJ data", err.Error())
			return
		}
		writeData(w, artists, len(artists))
	default:
		songs, err := s.store.SongsByDJ(djName, 20)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to fetch DJ data", err.Error())
			return
		}
		artists, err := s.store.TopArtistsByDJ(djName, 10)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to fetch DJ data", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, envelope{
			Success: true,
			Data: map[string]interface{}{
				"songs":       songs,
				"top_artists": artists,
			},
		})
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	overview, err := s.store.OverviewStats()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch statistics", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: overview})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.Logger.Debug("Health check request received")
	if err := s.store.Ping(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, envelope{
			Success: false,
			Error:   "storage unreachable",
			Message: err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Service is running"})
}
