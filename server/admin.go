package server

import (
	"encoding/json"
	"net/http"
)

// HandleAdminConfig 提供房间配置的读取与热更新
// GET  /admin/config?room=main  返回当前配置
// POST /admin/config?room=main  以 JSON 载荷更新部分字段（经房间协程应用）
func HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = DefaultRoomID
	}
	room := GetRoomManager().GetOrCreateRoom(roomID)

	switch r.Method {
	case http.MethodGet:
		writeConfig(w, room.Config())
	case http.MethodPost:
		var patch ConfigPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		writeConfig(w, room.UpdateConfig(patch))
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func writeConfig(w http.ResponseWriter, cfg Config) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"tickRate":      cfg.TickRate,
		"worldWidth":    cfg.WorldWidth,
		"worldHeight":   cfg.WorldHeight,
		"pointCount":    cfg.PointCount,
		"pointSpeed":    cfg.PointSpeed,
		"playerSpeed":   cfg.PlayerSpeed,
		"playerRadius":  cfg.PlayerRadius,
		"collectRadius": cfg.CollectRadius,
		"saveInterval":  cfg.SaveInterval.String(),
	})
}

// HandleMetrics 输出指定房间的运行指标
// GET /metrics?room=main
func HandleMetrics(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = DefaultRoomID
	}
	room := GetRoomManager().GetOrCreateRoom(roomID)
	payload := map[string]any{
		"room":    roomID,
		"metrics": room.metrics.Snapshot(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
