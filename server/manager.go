package server

import (
	"sync"

	"pointworld/store"
)

// RoomManager 管理多个房间的生命周期；房间之间完全独立，可并行推进
type RoomManager struct {
	mu    sync.RWMutex
	cfg   Config
	st    store.Store
	rooms map[string]*Room
}

var (
	defaultManager *RoomManager
	managerOnce    sync.Once
)

// InitRoomManager 以配置与持久层初始化单例管理器，须在 HandleWS 之前调用
func InitRoomManager(cfg Config, st store.Store) *RoomManager {
	managerOnce.Do(func() {
		defaultManager = &RoomManager{
			cfg:   cfg,
			st:    st,
			rooms: make(map[string]*Room),
		}
	})
	return defaultManager
}

// GetRoomManager 单例房间管理器
func GetRoomManager() *RoomManager {
	return defaultManager
}

// GetOrCreateRoom 获取或创建房间，并确保主循环已启动
func (m *RoomManager) GetOrCreateRoom(id string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		r = NewRoom(id, m.cfg, m.st)
		m.rooms[id] = r
		go r.Run()
	}
	return r
}

// StopAll 有序关停全部房间（各自完成最终快照后返回）
func (m *RoomManager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.rooms {
		r.Stop()
		delete(m.rooms, id)
	}
}
