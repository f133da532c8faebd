package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"tuiter/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
)

// Publisher 发布点赞/点踩切换事件
type Publisher interface {
	Publish(ctx context.Context, ev *models.ReactionEvent) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *models.ReactionEvent) error { return nil }

type rabbitPublisher struct {
	mu    sync.Mutex
	ch    *amqp.Channel
	queue string
}

func NewRabbitPublisher(ch *amqp.Channel, queue string) Publisher {
	return &rabbitPublisher{ch: ch, queue: queue}
}

func (p *rabbitPublisher) Publish(ctx context.Context, ev *models.ReactionEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.OccurredAt,
		Type:         string(ev.Kind),
		Body:         body,
	})
}

// AuditRecorder 持久化反应事件
type AuditRecorder interface {
	Record(ctx context.Context, ev *models.ReactionEvent) error
}

type gormAuditRecorder struct {
	db *gorm.DB
}

func NewGormAuditRecorder(db *gorm.DB) AuditRecorder {
	return &gormAuditRecorder{db: db}
}

func (r *gormAuditRecorder) Record(ctx context.Context, ev *models.ReactionEvent) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

// auditPublisher 在没有 MQ 时同步写库
type auditPublisher struct {
	rec AuditRecorder
}

func NewAuditPublisher(rec AuditRecorder) Publisher {
	return &auditPublisher{rec: rec}
}

func (p *auditPublisher) Publish(ctx context.Context, ev *models.ReactionEvent) error {
	return p.rec.Record(ctx, ev)
}

var errIncompleteEvent = errors.New("incomplete reaction event")

// HandleReactionEvent decodes one queued event and records it.
func HandleReactionEvent(ctx context.Context, rec AuditRecorder, body []byte) error {
	var ev models.ReactionEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("decode reaction event: %w", err)
	}
	if ev.Kind == "" || ev.UserID == "" || ev.TuitID == "" {
		return errIncompleteEvent
	}
	return rec.Record(ctx, &ev)
}

// requeueBackoff 是存储故障后把事件放回队列前的等待时间
const requeueBackoff = 5 * time.Second

// ConsumeReactionEvents 消费队列中的反应事件并写入审计表，直到 ctx 取消
func ConsumeReactionEvents(ctx context.Context, ch *amqp.Channel, queue string, rec AuditRecorder) error {
	// 一次只取一条，重试等待期间不会堆积未确认消息
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("qos %s: %w", queue, err)
	}
	deliveries, err := ch.Consume(queue, "tuiter-audit", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", queue, err)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("reaction event deliveries closed")
			}
			settleReactionEvent(ctx, rec, d, d.Body, requeueBackoff)
		}
	}
}

// acknowledger is the part of amqp.Delivery the consumer settles with.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// settleReactionEvent records one event and acks it. Malformed events are
// dropped; store failures are requeued after backoff, or at once when ctx ends.
func settleReactionEvent(ctx context.Context, rec AuditRecorder, d acknowledger, body []byte, backoff time.Duration) {
	err := HandleReactionEvent(ctx, rec, body)
	switch {
	case err == nil:
		_ = d.Ack(false)
	case isDecodeError(err):
		log.Printf("audit: drop reaction event: %v", err)
		_ = d.Nack(false, false)
	default:
		log.Printf("audit: record reaction event, requeue in %s: %v", backoff, err)
		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
		_ = d.Nack(false, true)
	}
}

// NewEventPublisher 选择反应事件的去向。MQ 事件只有在审计库可用时才有人消费，
// 所以没有 rec 时即使有 ch 也不投递
func NewEventPublisher(ch *amqp.Channel, queue string, rec AuditRecorder) Publisher {
	switch {
	case rec == nil:
		if ch != nil {
			log.Printf("RabbitMQ is configured without an audit database; reaction events on %s are not published", queue)
		}
		return NopPublisher{}
	case ch != nil:
		return NewRabbitPublisher(ch, queue)
	}
	return NewAuditPublisher(rec)
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, errIncompleteEvent)
}
