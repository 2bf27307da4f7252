package server

// Integrate 推进一个 Tick 的物理：先点后玩家，纯状态变换，无错误路径
//
// 点：position += velocity；越界轴速度取反并裁剪回边界（弹性反射，
// 裁剪可能截掉多于反射的超出量，属接受的行为误差）。
// 玩家：每个按住的轴施加固定位移（对角不归一化），再按渲染半径内缩裁剪，
// 保证玩家圆身不越过世界边缘。
func Integrate(w *World, cfg Config) {
	for _, pt := range w.Points {
		pt.X += pt.VX
		pt.Y += pt.VY

		if pt.X <= 0 || pt.X >= w.Width {
			pt.VX = -pt.VX
			pt.X = clamp(pt.X, 0, w.Width)
		}
		if pt.Y <= 0 || pt.Y >= w.Height {
			pt.VY = -pt.VY
			pt.Y = clamp(pt.Y, 0, w.Height)
		}
	}

	for _, p := range w.Players {
		if p.Input.Up {
			p.Y -= cfg.PlayerSpeed
		}
		if p.Input.Down {
			p.Y += cfg.PlayerSpeed
		}
		if p.Input.Left {
			p.X -= cfg.PlayerSpeed
		}
		if p.Input.Right {
			p.X += cfg.PlayerSpeed
		}

		p.X = clamp(p.X, cfg.PlayerRadius, w.Width-cfg.PlayerRadius)
		p.Y = clamp(p.Y, cfg.PlayerRadius, w.Height-cfg.PlayerRadius)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
