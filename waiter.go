package channels

import "github.com/ygrebnov/channels/internal/pool"

// waiterNode is one link in an intrusive doubly-linked FIFO queue, the
// shape runtime/chan.go uses for its sendq/recvq (a waitq of *sudog). It is
// used here for blockedSends and blockedReceives: every blocked operation
// keeps a waiterRef to the node it was pushed as, so an abort can remove
// itself in O(1) without scanning the queue.
type waiterNode[T any] struct {
	prev, next *waiterNode[T]
	list       *waiterList[T]
	seq        uint64
	value      T
}

// waiterRef identifies one PushBack's node. Nodes are recycled through a
// pool, so a bare *waiterNode could outlive its enqueue and alias a later
// waiter; the seq captured at push time makes a stale Remove a no-op
// instead.
type waiterRef[T any] struct {
	node *waiterNode[T]
	seq  uint64
}

// waiterList is an intrusive FIFO queue of *waiterNode[T]. Nodes are
// recycled through a sync.Pool-backed internal/pool.Dynamic rather than
// allocated and dropped on every Send/Receive, since a busy channel churns
// through waiterNode allocations at the same rate as blocked operations.
type waiterList[T any] struct {
	head, tail *waiterNode[T]
	n          int
	seq        uint64
	pool       *pool.Dynamic[*waiterNode[T]]
}

func (l *waiterList[T]) getNode() *waiterNode[T] {
	if l.pool == nil {
		l.pool = pool.NewDynamic(func() *waiterNode[T] { return &waiterNode[T]{} })
	}
	return l.pool.Get()
}

func (l *waiterList[T]) putNode(node *waiterNode[T]) {
	var zero T
	node.value = zero
	l.pool.Put(node)
}

// PushBack enqueues value at the tail and returns a ref identifying it, to
// be handed back to Remove on abort.
func (l *waiterList[T]) PushBack(value T) waiterRef[T] {
	node := l.getNode()
	l.seq++
	node.value, node.list, node.seq = value, l, l.seq
	if l.tail == nil {
		l.head, l.tail = node, node
	} else {
		node.prev = l.tail
		l.tail.next = node
		l.tail = node
	}
	l.n++
	return waiterRef[T]{node: node, seq: node.seq}
}

// PopFront dequeues and returns the head value, if any.
func (l *waiterList[T]) PopFront() (T, bool) {
	var zero T
	if l.head == nil {
		return zero, false
	}
	node := l.head
	v := node.value
	l.remove(node)
	return v, true
}

// Remove detaches the waiter ref identifies in O(1). A ref whose node has
// already been dequeued is a no-op, even if the node has since been
// recycled for a newer waiter.
func (l *waiterList[T]) Remove(ref waiterRef[T]) {
	if ref.node == nil || ref.node.list != l || ref.node.seq != ref.seq {
		return
	}
	l.remove(ref.node)
}

func (l *waiterList[T]) remove(node *waiterNode[T]) {
	if node.list == nil {
		return // already removed
	}
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev, node.next, node.list = nil, nil, nil
	l.n--
	l.putNode(node)
}

// Len reports the number of queued waiters.
func (l *waiterList[T]) Len() int { return l.n }

// Front returns the head value without dequeuing it.
func (l *waiterList[T]) Front() (T, bool) {
	var zero T
	if l.head == nil {
		return zero, false
	}
	return l.head.value, true
}
