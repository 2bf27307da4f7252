package server

import (
	"sync/atomic"
)

// RoomMetrics 记录房间运行期的关键指标（用于监控与调试）
type RoomMetrics struct {
	TickCount         int64 // 统计的 Tick 次数
	TotalTickNs       int64 // Tick 累计耗时（纳秒）
	Joins             int64 // 入场次数
	Leaves            int64 // 离场次数
	InputsAccepted    int64 // 被接受的输入数
	RateLimited       int64 // 因限流被丢弃的输入数
	BadMessages       int64 // 无法解析/类型未知而丢弃的消息数
	ChanFullDiscarded int64 // 因命令通道满被丢弃的输入数
	Collections       int64 // 收集事件总数
	SendDrops         int64 // 广播时因发送队列满被丢弃的消息数
	StoreErrors       int64 // 持久化读写失败数
	PersistDropped    int64 // 因写队列满被丢弃的持久化任务数
}

func (m *RoomMetrics) IncJoin()              { atomic.AddInt64(&m.Joins, 1) }
func (m *RoomMetrics) IncLeave()             { atomic.AddInt64(&m.Leaves, 1) }
func (m *RoomMetrics) IncAccepted()          { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *RoomMetrics) IncRateLimited()       { atomic.AddInt64(&m.RateLimited, 1) }
func (m *RoomMetrics) IncBadMessage()        { atomic.AddInt64(&m.BadMessages, 1) }
func (m *RoomMetrics) IncChanFullDiscarded() { atomic.AddInt64(&m.ChanFullDiscarded, 1) }
func (m *RoomMetrics) IncSendDrop()          { atomic.AddInt64(&m.SendDrops, 1) }
func (m *RoomMetrics) IncStoreError()        { atomic.AddInt64(&m.StoreErrors, 1) }
func (m *RoomMetrics) IncPersistDropped()    { atomic.AddInt64(&m.PersistDropped, 1) }
func (m *RoomMetrics) AddCollections(n int)  { atomic.AddInt64(&m.Collections, int64(n)) }
func (m *RoomMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *RoomMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":          tick,
		"avg_tick_ms":         avgMs,
		"joins":               atomic.LoadInt64(&m.Joins),
		"leaves":              atomic.LoadInt64(&m.Leaves),
		"inputs_accepted":     atomic.LoadInt64(&m.InputsAccepted),
		"rate_limited":        atomic.LoadInt64(&m.RateLimited),
		"bad_messages":        atomic.LoadInt64(&m.BadMessages),
		"chan_full_discarded": atomic.LoadInt64(&m.ChanFullDiscarded),
		"collections":         atomic.LoadInt64(&m.Collections),
		"send_drops":          atomic.LoadInt64(&m.SendDrops),
		"store_errors":        atomic.LoadInt64(&m.StoreErrors),
		"persist_dropped":     atomic.LoadInt64(&m.PersistDropped),
	}
}
