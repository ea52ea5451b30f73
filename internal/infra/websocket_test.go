package infra

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn 记录写入的消息，替代真实的 WebSocket 连接
type fakeConn struct {
	mu       sync.Mutex
	messages []interface{}
	closed   bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, v)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) received() []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]interface{}, len(f.messages))
	copy(out, f.messages)
	return out
}

func register(t *testing.T, manager *WsManager, userID string, conn Conn, wantCount int) {
	t.Helper()
	manager.Register <- UserConnection{UserID: userID, Conn: conn}
	require.Eventually(t, func() bool {
		return manager.ClientCount() == wantCount
	}, time.Second, 5*time.Millisecond)
}

func TestWsManagerBroadcast(t *testing.T) {
	manager := NewWsManager()
	go manager.Start()

	a, b := &fakeConn{}, &fakeConn{}
	register(t, manager, "1", a, 1)
	register(t, manager, "2", b, 2)

	manager.BroadcastToAll("hello")

	require.Eventually(t, func() bool {
		return len(a.received()) == 1 && len(b.received()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "hello", a.received()[0])
	assert.Equal(t, "hello", b.received()[0])
}

func TestWsManagerPushToUser(t *testing.T) {
	manager := NewWsManager()
	go manager.Start()

	// 同一用户两个连接，另一个用户一个连接
	a1, a2, b := &fakeConn{}, &fakeConn{}, &fakeConn{}
	register(t, manager, "1", a1, 1)
	register(t, manager, "1", a2, 2)
	register(t, manager, "2", b, 3)

	manager.PushToUser("1", "private")

	require.Eventually(t, func() bool {
		return len(a1.received()) == 1 && len(a2.received()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Empty(t, b.received())
}

func TestWsManagerUnregister(t *testing.T) {
	manager := NewWsManager()
	go manager.Start()

	conn := &fakeConn{}
	register(t, manager, "1", conn, 1)

	manager.Unregister <- UserConnection{UserID: "1", Conn: conn}
	require.Eventually(t, func() bool {
		return manager.ClientCount() == 0
	}, time.Second, 5*time.Millisecond)

	// 注销后的广播不会送达
	manager.BroadcastToAll("late")
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, conn.received())
}

func TestNoticeDispatcherForwardsToHub(t *testing.T) {
	manager := NewWsManager()
	go manager.Start()

	conn := &fakeConn{}
	register(t, manager, "1", conn, 1)

	dispatcher := NewNoticeDispatcher(manager)
	go dispatcher.Start()

	NoticeChan <- NoticeMessage{Event: "notice.published", Payload: []byte(`{"id":1}`)}

	require.Eventually(t, func() bool {
		return len(conn.received()) == 1
	}, time.Second, 5*time.Millisecond)

	msg, ok := conn.received()[0].(NoticeMessage)
	require.True(t, ok)
	assert.Equal(t, "notice.published", msg.Event)
}
