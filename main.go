package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pointworld/server"
	"pointworld/store"
)

// Point World 入口：启动 HTTP + WebSocket 服务，接好持久层并预热全局世界
func main() {
	var addr, logPath string
	flag.StringVar(&addr, "addr", ":8080", "server listen address, e.g. :8080")
	flag.StringVar(&logPath, "log", "pointworld.log", "log file path")
	flag.Parse()

	// .env 可选，生产环境直接用进程环境变量
	_ = godotenv.Load()

	if err := server.InitLogger(logPath); err != nil {
		panic(err)
	}
	defer server.SyncLogger()

	st, err := openStore()
	if err != nil {
		server.Log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	cfg := server.FromEnv()
	rm := server.InitRoomManager(cfg, st)
	// 预创建全局世界，首个连接免去冷启动
	_ = rm.GetOrCreateRoom(server.DefaultRoomID)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", server.HandleWS)
	mux.HandleFunc("/admin/config", server.HandleAdminConfig)
	mux.HandleFunc("/metrics", server.HandleMetrics)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		server.Log.Infof("Point World listening on %s (ws endpoint: /ws)", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			// 端口绑不上属致命错误，直接退出
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）：停收新连接 → 房间落最终快照 → 关持久层
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	server.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	rm.StopAll()
}

// openStore 按环境选择持久化后端：REDIS_URL > DATABASE_URL > 进程内存
func openStore() (store.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if url := os.Getenv("REDIS_URL"); url != "" {
		server.Log.Infof("using redis store")
		return store.NewRedisStore(ctx, url)
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		server.Log.Infof("using postgres store")
		return store.NewPostgresStore(ctx, dsn)
	}
	server.Log.Warnf("no REDIS_URL or DATABASE_URL set, scores will not survive restarts")
	return store.NewMemoryStore(), nil
}
