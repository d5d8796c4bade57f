package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"ahrelay/services"
)

// APIHandler exposes a read-only status API over the server directory
type APIHandler struct {
	serversService services.ServersService
}

func NewAPIHandler(serversService services.ServersService) *APIHandler {
	return &APIHandler{serversService: serversService}
}

// SetupEndpoints registers the API routes on the router
func (h *APIHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/api/guilds/{guildID}/servers", h.handleListGuildServers).Methods("GET")
}

// handleListGuildServers lists a guild's configured servers. GameServer
// serialization never includes the token.
func (h *APIHandler) handleListGuildServers(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guildID"]

	servers, err := h.serversService.ListServers(r.Context(), guildID)
	if err != nil {
		log.Printf("❌ Failed to list servers for guild %s: %v", guildID, err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(servers); err != nil {
		log.Printf("❌ Failed to encode servers response: %v", err)
	}
}
