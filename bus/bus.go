// bus.go
package bus

import (
	"strings"
	"sync"
)

// -----------------------------------------------------------------------------
// Topics
// -----------------------------------------------------------------------------

// Wildcards accepted in subscription topics only.
const (
	SingleLevel = "+" // exactly one token
	MultiLevel  = "#" // zero or more trailing tokens; must be last
)

// Topic is a sequence of path tokens, e.g. T("board", "tone").
type Topic []string

// T builds a Topic from its tokens.
func T(toks ...string) Topic { return Topic(toks) }

func (t Topic) Len() int        { return len(t) }
func (t Topic) At(i int) string { return t[i] }
func (t Topic) String() string  { return strings.Join(t, "/") }

// Match reports whether a concrete topic matches a (possibly wildcarded) pattern.
func Match(pattern, topic Topic) bool {
	for i, p := range pattern {
		if p == MultiLevel {
			return true
		}
		if i >= len(topic) {
			return false
		}
		if p != SingleLevel && p != topic[i] {
			return false
		}
	}
	return len(pattern) == len(topic)
}

// -----------------------------------------------------------------------------
// Message
// -----------------------------------------------------------------------------

type Message struct {
	Topic    Topic
	Payload  any
	Retained bool
}

// NewMessage is a convenience constructor.
func (b *Bus) NewMessage(t Topic, payload any, retained bool) *Message {
	return &Message{Topic: t, Payload: payload, Retained: retained}
}

// -----------------------------------------------------------------------------
// Subscription
// -----------------------------------------------------------------------------

type Subscription struct {
	topic Topic
	ch    chan *Message
	conn  *Connection
}

func (s *Subscription) Topic() Topic             { return s.topic }
func (s *Subscription) Channel() <-chan *Message { return s.ch }
func (s *Subscription) Unsubscribe()             { s.conn.Unsubscribe(s) }

// deliver never blocks: when the queue is full the oldest message is dropped.
func (s *Subscription) deliver(m *Message) {
	select {
	case s.ch <- m:
		return
	default:
	}
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- m:
	default:
	}
}

// -----------------------------------------------------------------------------
// Trie node (subscription patterns, keyed by token incl. wildcards)
// -----------------------------------------------------------------------------

type node struct {
	children map[string]*node
	subs     []*Subscription
}

func (n *node) collect(topic Topic, i int, out []*Subscription) []*Subscription {
	if h := n.children[MultiLevel]; h != nil {
		out = append(out, h.subs...)
	}
	if i == len(topic) {
		return append(out, n.subs...)
	}
	if c := n.children[topic[i]]; c != nil {
		out = c.collect(topic, i+1, out)
	}
	if c := n.children[SingleLevel]; c != nil {
		out = c.collect(topic, i+1, out)
	}
	return out
}

// -----------------------------------------------------------------------------
// Bus
// -----------------------------------------------------------------------------

type Bus struct {
	mu       sync.Mutex
	root     *node
	retained map[string]*Message
	qLen     int
}

// NewBus creates a new bus with the given subscription queue length.
func NewBus(queueLen int) *Bus {
	if queueLen <= 0 {
		queueLen = 8
	}
	return &Bus{
		root:     &node{},
		retained: make(map[string]*Message),
		qLen:     queueLen,
	}
}

func (b *Bus) addSubscription(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.root
	for _, tok := range sub.topic {
		if n.children == nil {
			n.children = make(map[string]*node)
		}
		child, ok := n.children[tok]
		if !ok {
			child = &node{}
			n.children[tok] = child
		}
		n = child
	}
	n.subs = append(n.subs, sub)

	for _, m := range b.retained {
		if Match(sub.topic, m.Topic) {
			sub.deliver(m)
		}
	}
}

// Publish delivers a message to all matching subscribers. A retained message
// with a nil payload clears the retained value for its topic.
func (b *Bus) Publish(msg *Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.root.collect(msg.Topic, 0, nil) {
		sub.deliver(msg)
	}
	if msg.Retained {
		key := msg.Topic.String()
		if msg.Payload == nil {
			delete(b.retained, key)
		} else {
			b.retained[key] = msg
		}
	}
}

func (b *Bus) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.root
	stack := make([]*node, 0, len(sub.topic))
	for _, t := range sub.topic {
		child := n.children[t]
		if child == nil {
			return
		}
		stack = append(stack, n)
		n = child
	}
	for i, s := range n.subs {
		if s == sub {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			break
		}
	}
	// Prune empty nodes bottom-up.
	for i := len(sub.topic) - 1; i >= 0; i-- {
		parent, key := stack[i], sub.topic[i]
		child := parent.children[key]
		if len(child.subs) != 0 || len(child.children) != 0 {
			break
		}
		delete(parent.children, key)
	}
}

// -----------------------------------------------------------------------------
// Connection
// -----------------------------------------------------------------------------

type Connection struct {
	bus  *Bus
	id   string
	mu   sync.Mutex
	subs []*Subscription
}

// NewConnection creates a new connection bound to this bus.
func (b *Bus) NewConnection(id string) *Connection {
	return &Connection{bus: b, id: id}
}

func (c *Connection) ID() string { return c.id }

// Publish sends a message via the bus.
func (c *Connection) Publish(msg *Message) { c.bus.Publish(msg) }

// NewMessage builds a message on the connection's bus.
func (c *Connection) NewMessage(t Topic, payload any, retained bool) *Message {
	return c.bus.NewMessage(t, payload, retained)
}

// Subscribe registers a subscription owned by this connection.
func (c *Connection) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{
		topic: topic,
		ch:    make(chan *Message, c.bus.qLen),
		conn:  c,
	}
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	c.bus.addSubscription(sub)
	return sub
}

// Unsubscribe removes a subscription owned by this connection and closes its channel.
func (c *Connection) Unsubscribe(sub *Subscription) {
	c.mu.Lock()
	found := false
	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			found = true
			break
		}
	}
	c.mu.Unlock()
	if !found {
		return
	}
	c.bus.unsubscribe(sub)
	close(sub.ch)
}

// Disconnect closes all subscriptions owned by the connection.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, sub := range subs {
		c.bus.unsubscribe(sub)
		close(sub.ch)
	}
}
