package server

import (
	"context"
	"time"

	"pointworld/store"
)

// 持久化写入相对 Tick 异步：有界队列 + 独立工作协程
// 写失败只记日志与指标，绝不反压世界推进（尽力而为的持久化模型）

const persistTimeout = 5 * time.Second

type persistJob struct {
	playerID string // 非空：分数写
	score    int
	worldID  string // 非空：快照写
	blob     []byte
}

type persistQueue struct {
	st      store.Store
	jobs    chan persistJob
	done    chan struct{}
	metrics *RoomMetrics
}

func newPersistQueue(st store.Store, metrics *RoomMetrics) *persistQueue {
	q := &persistQueue{
		st:      st,
		jobs:    make(chan persistJob, 256),
		done:    make(chan struct{}),
		metrics: metrics,
	}
	go q.run()
	return q
}

func (q *persistQueue) run() {
	defer close(q.done)
	for job := range q.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		var err error
		switch {
		case job.playerID != "":
			err = q.st.SetScore(ctx, job.playerID, job.score)
		case job.worldID != "":
			err = q.st.SaveWorld(ctx, job.worldID, job.blob)
		}
		cancel()
		if err != nil {
			q.metrics.IncStoreError()
			Log.Warnf("persist failed: %v", err)
		}
	}
}

// EnqueueScore 挂起一次分数写；队列满则丢弃（崩溃窗口内的增量可能丢失，可接受）
func (q *persistQueue) EnqueueScore(playerID string, score int) {
	q.enqueue(persistJob{playerID: playerID, score: score})
}

// EnqueueWorld 挂起一次周期快照写
func (q *persistQueue) EnqueueWorld(worldID string, blob []byte) {
	q.enqueue(persistJob{worldID: worldID, blob: blob})
}

func (q *persistQueue) enqueue(job persistJob) {
	select {
	case q.jobs <- job:
	default:
		q.metrics.IncPersistDropped()
		Log.Warnf("persist queue full, dropping write (player=%q world=%q)", job.playerID, job.worldID)
	}
}

// FinalWorld 关停路径上的最终快照：阻塞投递，确保进入队列
func (q *persistQueue) FinalWorld(worldID string, blob []byte) {
	q.jobs <- persistJob{worldID: worldID, blob: blob}
}

// Close 停止接收并排空剩余任务，返回时全部写入已完成或已记失败
func (q *persistQueue) Close() {
	close(q.jobs)
	<-q.done
}
