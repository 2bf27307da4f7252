package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// 每连接入站限流：正常客户端按键变化 + 50ms 连发远低于该速率
const (
	inboundRatePerSec = 60
	inboundBurst      = 120
)

// ClientConn 负责发送（写）数据到客户端的轻量包装
type ClientConn struct {
	ws        *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
}

func NewClientConn(ws *websocket.Conn) *ClientConn {
	return &ClientConn{
		ws:   ws,
		send: make(chan []byte, 64),
	}
}

// Enqueue 将要发送的消息压入队列（非阻塞，满则丢弃并返回 false）
// 慢客户端只会丢自己的消息，绝不拖慢 Tick 或其他连接
func (c *ClientConn) Enqueue(b []byte) bool {
	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

// Close 关闭底层连接与发送队列；可安全重复调用
func (c *ClientConn) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
		_ = c.ws.Close()
	})
}

// writePump 独立协程，负责从 send 队列写出到 WS
func (c *ClientConn) writePump() {
	defer c.ws.Close()
	for msg := range c.send {
		_ = c.ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readPump 读取入站消息，解析后注入房间；读泵退出时请求摘除会话
func (c *ClientConn) readPump(room *Room, connID string) {
	defer c.ws.Close()
	defer room.RequestLeave(connID)
	c.ws.SetReadLimit(1 << 20) // 1MB
	_ = c.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.ws.SetPongHandler(func(string) error {
		_ = c.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	limiter := rate.NewLimiter(rate.Limit(inboundRatePerSec), inboundBurst)

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		msg, err := DecodeInbound(payload)
		if err != nil {
			// 协议错误：丢消息、留日志，连接保持打开
			room.metrics.IncBadMessage()
			Log.Debugf("drop inbound from %s: %v", connID, err)
			continue
		}
		switch msg.Type {
		case MsgJoin:
			room.Join(connID, PlayerID(msg.PlayerID))
		case MsgInput:
			if !limiter.Allow() {
				room.metrics.IncRateLimited()
				continue
			}
			room.OnInput(connID, msg.Axes())
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 客户端托管在独立域名，放开来源校验
		return true
	},
}

// HandleWS WebSocket 接入：?room=main，每个连接分配随机连接 id
func HandleWS(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		roomID = DefaultRoomID
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Warnf("upgrade error: %v", err)
		return
	}

	room := GetRoomManager().GetOrCreateRoom(roomID)
	connID := uuid.NewString()

	client := NewClientConn(ws)
	room.Connect(connID, client)

	go client.writePump()
	go client.readPump(room, connID)
}
