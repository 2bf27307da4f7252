package server

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func TestMain(m *testing.M) {
	if err := InitLogger(filepath.Join(os.TempDir(), "pointworld-test.log")); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

// drainInbox 在测试协程里按到达顺序消费全部已排队命令
func drainInbox(r *Room) {
	for {
		select {
		case cmd := <-r.inbox:
			r.handleCommand(cmd)
		default:
			return
		}
	}
}
