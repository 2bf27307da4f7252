package server

import (
	"encoding/json"
	"time"
)

// Run 房间主循环：固定频率推进世界，入站命令与 Tick 串行执行
// 任何错误都不允许停掉时钟——Tick 停摆对所有在线玩家等同于宕机
func (r *Room) Run() {
	defer close(r.done)

	ticker := time.NewTicker(r.cfg.TickInterval())
	defer ticker.Stop()
	saver := time.NewTicker(r.cfg.SaveInterval)
	defer saver.Stop()

	for {
		select {
		case <-r.quit:
			r.shutdown()
			return
		case cmd := <-r.inbox:
			r.handleCommand(cmd)
		case <-ticker.C:
			start := time.Now()
			r.step()
			r.metrics.AddTick(time.Since(start).Nanoseconds())
		case <-saver.C:
			r.saveWorld()
		}
	}
}

// step 单个 Tick，严格按序：物理积分 → 碰撞判定 → 快照广播 → 收集事件广播
func (r *Room) step() {
	Integrate(r.world, r.cfg)

	events := Resolve(r.world, r.cfg, func(p *Player, ev CollectionEvent) {
		// 每次收集都挂一笔持久分数写；不等写完成即广播
		r.persist.EnqueueScore(string(p.ID), p.Score)
	})
	if n := len(events); n > 0 {
		r.metrics.AddCollections(n)
	}

	state, err := json.Marshal(BuildState(r.world))
	if err != nil {
		Log.Errorf("room %s: marshal state: %v", r.ID, err)
		return
	}
	r.broadcast(state)

	// 空收集列表不广播
	if len(events) > 0 {
		collected, err := json.Marshal(CollectedMessage{Type: MsgCollected, Points: events})
		if err != nil {
			Log.Errorf("room %s: marshal collected: %v", r.ID, err)
			return
		}
		r.broadcast(collected)
	}
}

// saveWorld 周期快照：只存点数组，玩家位置瞬态不落盘
func (r *Room) saveWorld() {
	blob, err := r.world.MarshalRecord(time.Now())
	if err != nil {
		Log.Errorf("room %s: marshal world record: %v", r.ID, err)
		return
	}
	r.persist.EnqueueWorld(r.ID, blob)
	Log.Debugf("room %s: game state save scheduled", r.ID)
}

// shutdown 有序关停：最终快照阻塞入队，排空写队列后关闭全部连接
func (r *Room) shutdown() {
	blob, err := r.world.MarshalRecord(time.Now())
	if err != nil {
		Log.Errorf("room %s: marshal final world record: %v", r.ID, err)
	} else {
		r.persist.FinalWorld(r.ID, blob)
	}
	r.persist.Close()

	for connID, conn := range r.conns {
		conn.Close()
		delete(r.conns, connID)
	}
	Log.Infof("room %s: stopped", r.ID)
}
