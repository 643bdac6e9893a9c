// Package events publica notificaciones al stream en tiempo real (Kafka).
// El productor desacopla al caller con un canal con buffer: encolar nunca
// bloquea y la cola llena descarta el evento con un warn.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"

	"github.com/tu-usuario/admisiones-pro/internal/application/ports"
	"github.com/tu-usuario/admisiones-pro/pkg/logger"
)

const (
	queueSize      = 1000
	sendMaxElapsed = 15 * time.Second
)

// KafkaWriter contrato mínimo sobre el writer de segmentio, para poder
// inyectar un doble en tests.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer implementa ports.EventPublisher sobre Kafka con un event loop
// propio. Los envíos reintentan con backoff exponencial; un evento que agota
// los reintentos se descarta (la notificación persistida es la fuente de
// verdad, el stream es best-effort).
type Producer struct {
	writer    KafkaWriter
	events    chan ports.Notification
	log       *logger.Logger
	closeChan chan struct{}
}

var _ ports.EventPublisher = (*Producer)(nil)

// NewProducer conecta al cluster, asegura el topic y arranca el event loop.
func NewProducer(brokers []string, topic string, log *logger.Logger) (*Producer, error) {
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     3,
		ReplicationFactor: 1,
	})
	if err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("no se pudo crear el topic (puede existir ya)")
	}

	p := &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
			Topic:    topic,
		},
		events:    make(chan ports.Notification, queueSize),
		log:       log,
		closeChan: make(chan struct{}),
	}
	go p.eventLoop()
	return p, nil
}

// newWithWriter constructor para tests con un writer inyectado.
func newWithWriter(w KafkaWriter, log *logger.Logger) *Producer {
	p := &Producer{
		writer:    w,
		events:    make(chan ports.Notification, queueSize),
		log:       log,
		closeChan: make(chan struct{}),
	}
	go p.eventLoop()
	return p
}

// Publish encola sin bloquear; la cola llena descarta con un warn.
func (p *Producer) Publish(n ports.Notification) {
	select {
	case p.events <- n:
	default:
		p.log.Warn().Str("type", n.Type).Str("recipient", n.RecipientID).
			Msg("cola del productor llena, evento descartado")
	}
}

func (p *Producer) eventLoop() {
	for {
		select {
		case n := <-p.events:
			p.send(context.Background(), n)
		case <-p.closeChan:
			return
		}
	}
}

func (p *Producer) send(ctx context.Context, n ports.Notification) {
	value, err := json.Marshal(n)
	if err != nil {
		p.log.Error().Err(err).Str("type", n.Type).Msg("evento no serializable")
		return
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = sendMaxElapsed
	err = backoff.Retry(func() error {
		return p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(n.RecipientID),
			Value: value,
		})
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		p.log.Error().Err(err).Str("type", n.Type).Str("recipient", n.RecipientID).
			Msg("evento no publicado tras reintentos")
	}
}

// Close detiene el event loop y cierra el writer. Los eventos aún encolados
// se pierden; llamar después de drenar el tráfico entrante.
func (p *Producer) Close() {
	close(p.closeChan)
	if err := p.writer.Close(); err != nil {
		p.log.Error().Err(err).Msg("error cerrando el writer de Kafka")
	}
}
