package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/ugaemi/arena-server/internal/game"
	"github.com/ugaemi/arena-server/internal/room"
)

const qrSize = 256

// HTTPHandler serves the plain HTTP endpoints next to the WebSocket.
type HTTPHandler struct {
	rm        *room.Manager
	publicURL string
	clients   func() int
}

// NewHTTPHandler creates the HTTP endpoints. publicURL is the base of QR
// join links; clients reports the number of live connections.
func NewHTTPHandler(rm *room.Manager, publicURL string, clients func() int) *HTTPHandler {
	return &HTTPHandler{
		rm:        rm,
		publicURL: strings.TrimRight(publicURL, "/"),
		clients:   clients,
	}
}

// Register mounts the endpoints on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /rooms", h.handleListRooms)
	mux.HandleFunc("GET /rooms/{code}/qr", h.handleRoomQR)
	mux.HandleFunc("GET /metrics", h.handleMetrics)
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (h *HTTPHandler) handleListRooms(w http.ResponseWriter, _ *http.Request) {
	rooms := h.rm.ListWaiting()
	if rooms == nil {
		rooms = []room.Info{}
	}
	writeJSON(w, map[string]any{"rooms": rooms})
}

func (h *HTTPHandler) handleRoomQR(w http.ResponseWriter, r *http.Request) {
	rm := h.rm.GetRoom(r.PathValue("code"))
	if rm == nil {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	link := h.publicURL + "/?room=" + url.QueryEscape(rm.Code)
	png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
	if err != nil {
		slog.Error("failed to encode qr code", "room", rm.Code, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

type roomMetrics struct {
	Code    string               `json:"code"`
	State   string               `json:"state"`
	Players int                  `json:"players"`
	Metrics room.MetricsSnapshot `json:"metrics"`
}

type metricsResponse struct {
	Clients int            `json:"clients"`
	Rooms   []roomMetrics  `json:"rooms"`
	Pool    game.PoolStats `json:"pool"`
}

func (h *HTTPHandler) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	resp := metricsResponse{
		Rooms: []roomMetrics{},
		Pool:  h.rm.Pool().Stats(),
	}
	if h.clients != nil {
		resp.Clients = h.clients()
	}
	for _, r := range h.rm.Rooms() {
		info := r.Info()
		resp.Rooms = append(resp.Rooms, roomMetrics{
			Code:    info.Code,
			State:   info.State,
			Players: info.Players,
			Metrics: r.Metrics(),
		})
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
