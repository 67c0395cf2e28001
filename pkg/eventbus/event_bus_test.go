package eventbus

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type priceChanged struct {
	TicketID int64
	Minor    int64
}

type eventRenamed struct {
	Name string
}

func bufferedLogger() (*logrus.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(buf)
	log.SetLevel(logrus.WarnLevel)
	return log, buf
}

func TestPublish_DispatchesBySignature(t *testing.T) {
	log, buf := bufferedLogger()
	bus := NewEventPublisher(log)

	var prices []int64
	var names []string
	bus.Subscribe(func(ctx context.Context, e *priceChanged) { prices = append(prices, e.Minor) })
	bus.Subscribe(func(ctx context.Context, e *eventRenamed) { names = append(names, e.Name) })

	bus.Publish(context.Background(), &priceChanged{TicketID: 1, Minor: 2500})
	bus.Publish(context.Background(), &eventRenamed{Name: "Jazz Night"})

	require.Equal(t, []int64{2500}, prices)
	require.Equal(t, []string{"Jazz Night"}, names)
	require.Empty(t, buf.String())
}

func TestPublish_WarnsWithoutSubscribers(t *testing.T) {
	log, buf := bufferedLogger()
	bus := NewEventPublisher(log)
	bus.Subscribe(func(e *priceChanged) { t.Error("should not be called") })

	bus.Publish(&eventRenamed{Name: "x"})
	require.Contains(t, buf.String(), "no matching subscribers")
}

func TestPublish_RecoversPanics(t *testing.T) {
	log, buf := bufferedLogger()
	bus := NewEventPublisher(log)

	called := false
	bus.Subscribe(func(e *priceChanged) { panic("boom") })
	bus.Subscribe(func(e *priceChanged) { called = true })

	require.NotPanics(t, func() { bus.Publish(&priceChanged{}) })
	require.True(t, called)
	require.Contains(t, buf.String(), "panicked")
	require.Contains(t, buf.String(), "boom")
}

func TestPublishE(t *testing.T) {
	bus := NewEventPublisher(nil)
	require.ErrorIs(t, bus.PublishE(&priceChanged{}), ErrNoSubscribers)

	failure := errors.New("audit sink down")
	bus.Subscribe(func(e *priceChanged) error { return failure })
	bus.Subscribe(func(e *priceChanged) int { return 1 })
	bus.Subscribe(func(e *priceChanged) { panic("boom") })
	bus.Subscribe(func(e *priceChanged) error { return nil })

	err := bus.PublishE(&priceChanged{})
	require.ErrorIs(t, err, failure)
	require.ErrorIs(t, err, ErrInvalidHandlerReturn)
	require.Contains(t, err.Error(), "panicked")
}

func TestMatchSignature(t *testing.T) {
	require.True(t, MatchSignature(func(ctx context.Context) {}, []interface{}{context.Background()}))
	require.True(t, MatchSignature(func(e *priceChanged) {}, []interface{}{nil}))
	require.False(t, MatchSignature(func(e priceChanged) {}, []interface{}{nil}))
	require.False(t, MatchSignature(func(e *priceChanged) {}, []interface{}{&eventRenamed{}}))
	require.False(t, MatchSignature(func(a, b int) {}, []interface{}{1}))
	require.False(t, MatchSignature("not a func", nil))
}

func TestSubscribeUnsubscribeClear(t *testing.T) {
	bus := NewEventPublisher(nil)
	h := func(e *priceChanged) {}
	bus.Subscribe(h)
	bus.Subscribe(func(e *eventRenamed) {})
	require.Equal(t, 2, bus.SubscribersCount())

	bus.Unsubscribe(h)
	require.Equal(t, 1, bus.SubscribersCount())

	bus.Clear()
	require.Zero(t, bus.SubscribersCount())
	require.Panics(t, func() { bus.Subscribe(42) })
}
