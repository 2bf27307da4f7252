package server

// 会话登记：连接 id 与玩家实体的绑定，全部在房间协程内执行
// 同一 PlayerID 的并发会话不去重，后到输入覆盖先到（见 DESIGN.md）

// addPlayer 以随机位置/随机颜色登记玩家，分数为持久层读到的历史值
func (w *World) addPlayer(connID string, id PlayerID, score int, cfg Config) *Player {
	p := newPlayer(w.rng, id, score, cfg)
	w.Players[connID] = p
	return p
}

// applyInput 整体替换四个输入轴；连接尚未 join 时静默忽略
func (w *World) applyInput(connID string, axes InputAxes) {
	if p, ok := w.Players[connID]; ok {
		p.Input = axes
	}
}

// removePlayer 摘除玩家；幂等，未 join 的连接调用无副作用
func (w *World) removePlayer(connID string) {
	delete(w.Players, connID)
}
