package event

import (
	"context"
	"log"
	"sync"
	"time"
)

// Event 表示系统中的一个事件
type Event struct {
	Type      string      // 事件类型，见 constants 包
	Source    string      // 事件来源
	Data      interface{} // 事件数据
	Timestamp time.Time   // 时间戳
}

// Handler 事件处理函数
type Handler func(ctx context.Context, event Event) error

// Bus 进程内事件总线，解耦业务层与推送/日志等订阅方。
type Bus struct {
	handlers map[string][]Handler
	mu       sync.RWMutex

	eventChan chan Event
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewBus 创建事件总线并启动后台分发协程
func NewBus(bufferSize int) *Bus {
	ctx, cancel := context.WithCancel(context.Background())

	bus := &Bus{
		handlers:  make(map[string][]Handler),
		eventChan: make(chan Event, bufferSize),
		ctx:       ctx,
		cancel:    cancel,
	}

	bus.wg.Add(1)
	go bus.processEvents()

	return bus
}

// Subscribe 订阅指定类型的事件
func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish 异步发布事件。缓冲满时丢弃并记录警告。
func (b *Bus) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case b.eventChan <- event:
	default:
		log.Printf("EventBus: Warning - event channel full, dropping event: %s", event.Type)
	}
}

// PublishSync 同步发布事件，所有订阅者处理完毕后返回
func (b *Bus) PublishSync(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return b.dispatch(ctx, event)
}

func (b *Bus) processEvents() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			if err := b.dispatch(b.ctx, event); err != nil {
				log.Printf("EventBus: Error processing event %s: %v", event.Type, err)
			}
		case <-b.ctx.Done():
			return
		}
	}
}

// dispatch 并发分发事件给所有订阅者，逐一收集错误
func (b *Bus) dispatch(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(handlers))

	for _, handler := range handlers {
		wg.Add(1)
		go func(h Handler) {
			defer wg.Done()
			if err := h(ctx, event); err != nil {
				errChan <- err
			}
		}(handler)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		log.Printf("EventBus: Handler error for event %s: %v", event.Type, err)
	}

	return nil
}

// SubscriberCount 返回某事件类型的订阅者数量
func (b *Bus) SubscriberCount(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Shutdown 关闭事件总线，等待后台协程退出
func (b *Bus) Shutdown() {
	b.cancel()
	b.wg.Wait()
}
