// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	"time"

	"github.com/juju/loggo/v2"
	"github.com/juju/pubsub/v2"
	gc "gopkg.in/check.v1"
)

// NewHub returns a hub for tests.
func NewHub() *pubsub.SimpleHub {
	return pubsub.NewSimpleHub(&pubsub.SimpleHubConfig{
		Logger: loggo.GetLogger("juju.gui.testing.hub"),
	})
}

// TopicWatcher collects the data published on a topic.
type TopicWatcher struct {
	events      chan interface{}
	unsubscribe func()
}

// WatchTopic subscribes to topic on hub. Call Stop to unsubscribe.
func WatchTopic(hub *pubsub.SimpleHub, topic string) *TopicWatcher {
	w := &TopicWatcher{events: make(chan interface{}, 100)}
	w.unsubscribe = hub.Subscribe(topic, func(_ string, data interface{}) {
		w.events <- data
	})
	return w
}

// Stop unsubscribes from the hub.
func (w *TopicWatcher) Stop() {
	w.unsubscribe()
}

// Next returns the next event, failing the test if none arrives within
// LongWait.
func (w *TopicWatcher) Next(c *gc.C) interface{} {
	select {
	case data := <-w.events:
		return data
	case <-time.After(LongWait):
		c.Fatalf("timed out waiting for event")
	}
	return nil
}

// AssertNoEvent fails the test if an event arrives within ShortWait.
func (w *TopicWatcher) AssertNoEvent(c *gc.C) {
	select {
	case data := <-w.events:
		c.Fatalf("unexpected event %#v", data)
	case <-time.After(ShortWait):
	}
}
