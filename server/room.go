package server

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"pointworld/store"
)

// DefaultRoomID 单世界部署的全局房间名
const DefaultRoomID = "main"

// Sender 房间侧看到的连接发送端；Enqueue 必须非阻塞
type Sender interface {
	Enqueue(b []byte) bool
	Close()
}

// Room 房间世界：权威状态维护在内存，单协程推进
// 入站命令与 Tick 在同一协程串行执行，World 无需加锁
type Room struct {
	ID string

	cfg   Config
	world *World
	// 所有打开的连接，含尚未 join 的（广播面向全部连接）
	conns map[string]Sender

	inbox chan any
	quit  chan struct{}
	done  chan struct{}

	st      store.Store
	persist *persistQueue
	metrics *RoomMetrics
}

// 房间命令：由连接协程投递，房间协程串行消费
type connectCmd struct {
	connID string
	conn   Sender
}

type joinCmd struct {
	connID   string
	playerID PlayerID
	score    int
}

type inputCmd struct {
	connID string
	axes   InputAxes
}

type leaveCmd struct {
	connID string
}

type getConfigCmd struct {
	reply chan Config
}

type updateConfigCmd struct {
	patch ConfigPatch
	reply chan Config
}

// ConfigPatch /admin/config 的热更新载荷，空字段不变
type ConfigPatch struct {
	PointSpeed    *float64 `json:"pointSpeed,omitempty"`
	PlayerSpeed   *float64 `json:"playerSpeed,omitempty"`
	CollectRadius *float64 `json:"collectRadius,omitempty"`
}

// NewRoom 创建房间：优先从持久层恢复点数组，没有或损坏则生成新世界
func NewRoom(id string, cfg Config, st store.Store) *Room {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	r := &Room{
		ID:      id,
		cfg:     cfg,
		conns:   make(map[string]Sender),
		inbox:   make(chan any, 256),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
		st:      st,
		metrics: &RoomMetrics{},
	}
	r.persist = newPersistQueue(st, r.metrics)
	r.world = loadOrCreateWorld(id, cfg, rng, st)
	return r
}

func loadOrCreateWorld(id string, cfg Config, rng *rand.Rand, st store.Store) *World {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	blob, err := st.LoadWorld(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			Log.Warnf("room %s: load world failed, starting fresh: %v", id, err)
		}
		Log.Infof("room %s: initialized new game state", id)
		return NewWorld(cfg, rng)
	}
	w, err := RestoreWorld(cfg, rng, blob)
	if err != nil {
		Log.Warnf("room %s: saved world unusable, starting fresh: %v", id, err)
		return NewWorld(cfg, rng)
	}
	Log.Infof("room %s: loaded saved game state (%d points)", id, len(w.Points))
	return w
}

// Stop 请求关停并等待最终快照落盘
func (r *Room) Stop() {
	close(r.quit)
	<-r.done
}

// Connect 登记新连接；未 join 前也会收到广播
func (r *Room) Connect(connID string, conn Sender) {
	r.inbox <- connectCmd{connID: connID, conn: conn}
}

// Join 处理 join 消息：在连接协程读持久分数（不阻塞 Tick），再投递登记命令
// requestedID 为空时回退为连接 id
func (r *Room) Join(connID string, requestedID PlayerID) {
	playerID := requestedID
	if playerID == "" {
		playerID = PlayerID(connID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	score, err := r.st.GetScore(ctx, string(playerID))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		// 读失败按 0 分继续，持久化故障不挡入场
		r.metrics.IncStoreError()
		Log.Warnf("room %s: load score for %s failed: %v", r.ID, playerID, err)
		score = 0
	}

	r.inbox <- joinCmd{connID: connID, playerID: playerID, score: score}
}

// OnInput 投递输入（非阻塞，命令通道满则丢弃，保证读协程不被反压）
func (r *Room) OnInput(connID string, axes InputAxes) {
	select {
	case r.inbox <- inputCmd{connID: connID, axes: axes}:
		r.metrics.IncAccepted()
	default:
		r.metrics.IncChanFullDiscarded()
	}
}

// RequestLeave 请求在房间协程中摘除连接与会话
func (r *Room) RequestLeave(connID string) {
	r.inbox <- leaveCmd{connID: connID}
}

// Config 读取当前配置（经房间协程，无数据竞争）
func (r *Room) Config() Config {
	reply := make(chan Config, 1)
	r.inbox <- getConfigCmd{reply: reply}
	return <-reply
}

// UpdateConfig 应用热更新并返回更新后的配置
func (r *Room) UpdateConfig(patch ConfigPatch) Config {
	reply := make(chan Config, 1)
	r.inbox <- updateConfigCmd{patch: patch, reply: reply}
	return <-reply
}

func (r *Room) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case connectCmd:
		r.conns[c.connID] = c.conn
	case joinCmd:
		r.handleJoin(c)
	case inputCmd:
		r.world.applyInput(c.connID, c.axes)
	case leaveCmd:
		r.handleLeave(c.connID)
	case getConfigCmd:
		c.reply <- r.cfg
	case updateConfigCmd:
		r.applyConfigPatch(c.patch)
		c.reply <- r.cfg
	}
}

func (r *Room) handleJoin(c joinCmd) {
	conn, ok := r.conns[c.connID]
	if !ok {
		// 连接已在 join 落地前关闭
		return
	}
	p := r.world.addPlayer(c.connID, c.playerID, c.score, r.cfg)
	r.metrics.IncJoin()

	welcome := WelcomeMessage{
		Type:        MsgWelcome,
		PlayerID:    string(p.ID),
		Score:       p.Score,
		WorldWidth:  r.world.Width,
		WorldHeight: r.world.Height,
	}
	b, err := json.Marshal(welcome)
	if err != nil {
		Log.Errorf("room %s: marshal welcome: %v", r.ID, err)
		return
	}
	if !conn.Enqueue(b) {
		r.metrics.IncSendDrop()
	}
	Log.Infof("room %s: player %s joined (score: %d)", r.ID, p.ID, p.Score)
}

// handleLeave 摘除连接与会话；幂等
func (r *Room) handleLeave(connID string) {
	conn, ok := r.conns[connID]
	if !ok {
		return
	}
	conn.Close()
	delete(r.conns, connID)
	if p, joined := r.world.Players[connID]; joined {
		Log.Infof("room %s: player %s disconnected", r.ID, p.ID)
	}
	r.world.removePlayer(connID)
	r.metrics.IncLeave()
}

func (r *Room) applyConfigPatch(patch ConfigPatch) {
	if patch.PointSpeed != nil && *patch.PointSpeed > 0 {
		r.cfg.PointSpeed = *patch.PointSpeed
	}
	if patch.PlayerSpeed != nil && *patch.PlayerSpeed > 0 {
		r.cfg.PlayerSpeed = *patch.PlayerSpeed
	}
	if patch.CollectRadius != nil && *patch.CollectRadius > 0 {
		r.cfg.CollectRadius = *patch.CollectRadius
	}
	Log.Infof("room %s: config updated: pointSpeed=%.2f playerSpeed=%.2f collectRadius=%.2f",
		r.ID, r.cfg.PointSpeed, r.cfg.PlayerSpeed, r.cfg.CollectRadius)
}

// broadcast 将编码好的消息发给所有连接：单连接失败只丢自己的，不影响其他人
func (r *Room) broadcast(b []byte) {
	for _, conn := range r.conns {
		if !conn.Enqueue(b) {
			r.metrics.IncSendDrop()
		}
	}
}
