package infra

import (
	"log"
)

// NoticeDispatcher drains NoticeChan and fans messages out to the
// WebSocket clients.
type NoticeDispatcher struct {
	wsManager *WsManager
}

func NewNoticeDispatcher(wsManager *WsManager) *NoticeDispatcher {
	return &NoticeDispatcher{wsManager: wsManager}
}

// Start begins listening on NoticeChan. It should be run in a separate
// goroutine and returns when the channel is closed.
func (d *NoticeDispatcher) Start() {
	log.Println("NoticeDispatcher: Started listening for notices...")
	for msg := range NoticeChan {
		d.safeBroadcast(msg)
	}
	log.Println("NoticeDispatcher: NoticeChan closed, stopping.")
}

func (d *NoticeDispatcher) safeBroadcast(msg NoticeMessage) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("NoticeDispatcher: Panic while broadcasting: %v", r)
		}
	}()
	d.wsManager.BroadcastToAll(msg)
}
