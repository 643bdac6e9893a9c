package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/admisiones-pro/internal/application/ports"
	"github.com/tu-usuario/admisiones-pro/pkg/logger"
)

type recordingWriter struct {
	mu       sync.Mutex
	msgs     []kafka.Message
	failures int // falla los primeros N WriteMessages
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failures > 0 {
		w.failures--
		return errors.New("broker no disponible")
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *recordingWriter) recorded() []kafka.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]kafka.Message, len(w.msgs))
	copy(out, w.msgs)
	return out
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condición no alcanzada a tiempo")
}

func TestProducer_PublicaConClaveDelDestinatario(t *testing.T) {
	w := &recordingWriter{}
	p := newWithWriter(w, testLogger())
	defer p.Close()

	p.Publish(ports.Notification{RecipientID: "u-1", Type: "stage_updated", Title: "Etapa"})

	waitFor(t, func() bool { return len(w.recorded()) == 1 })
	msg := w.recorded()[0]
	assert.Equal(t, []byte("u-1"), msg.Key)

	var got ports.Notification
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "stage_updated", got.Type)
}

func TestProducer_ReintentaAnteFalloTransitorio(t *testing.T) {
	w := &recordingWriter{failures: 2}
	p := newWithWriter(w, testLogger())
	defer p.Close()

	p.Publish(ports.Notification{RecipientID: "u-1", Type: "application_created"})

	waitFor(t, func() bool { return len(w.recorded()) == 1 })
}

func TestProducer_ColaLlenaDescartaSinBloquear(t *testing.T) {
	w := &recordingWriter{}
	p := &Producer{
		writer:    w,
		events:    make(chan ports.Notification, 1), // sin event loop: la cola se llena
		log:       testLogger(),
		closeChan: make(chan struct{}),
	}

	done := make(chan struct{})
	go func() {
		p.Publish(ports.Notification{RecipientID: "u-1"})
		p.Publish(ports.Notification{RecipientID: "u-2"}) // descartado
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish bloqueó con la cola llena")
	}
	assert.Len(t, p.events, 1)
}

func TestProducer_CloseCierraElWriter(t *testing.T) {
	w := &recordingWriter{}
	p := newWithWriter(w, testLogger())
	p.Close()

	select {
	case <-p.closeChan:
	default:
		t.Error("closeChan sigue abierto")
	}
	assert.True(t, w.closed)
}
