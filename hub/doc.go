// Package hub implements the embedded Mercure broker and its HTTP endpoint.
//
// The Broker keeps a registry of open subscriptions keyed by connection ID.
// Publish routes an update to every open subscription whose requested topics
// cover the update's topic; private updates additionally require the
// subscriber's token grant to cover the topic under the configured
// PrivatePolicy. Delivery never blocks the publisher: a subscriber whose
// buffer is full misses the update.
//
// There is no history. A subscriber reconnecting with a Last-Event-ID only
// receives updates published after it reconnected.
//
// # Usage
//
//	broker := hub.NewBroker(hub.WithPrivatePolicy(hub.PrivateExplicit))
//	h, err := broker.Subscribe(ctx, hub.Subscription{Topics: topic.NewScope("room-1")})
//	go func() {
//	    for u := range h.Updates() {
//	        fmt.Println(u.Data)
//	    }
//	}()
//	broker.Publish(ctx, hub.Update{Topic: "room-1", Data: "hello"})
//
// Handler exposes the broker at /.well-known/mercure on a gin router:
// GET streams Server-Sent Events, POST publishes when enabled.
package hub
