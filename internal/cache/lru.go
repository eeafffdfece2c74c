package cache

// node is one entry of the access-ordered list.
type node[K comparable, V any] struct {
	key   K
	value V
	prev  *node[K, V]
	next  *node[K, V]
}

// lruList orders entries by access: head is the most recently used, tail
// the least. It is not synchronized.
type lruList[K comparable, V any] struct {
	head *node[K, V]
	tail *node[K, V]
}

func (l *lruList[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
}

func (l *lruList[K, V]) moveToFront(n *node[K, V]) {
	if n == l.head {
		return
	}
	l.remove(n)
	l.pushFront(n)
}

func (l *lruList[K, V]) remove(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev = nil
	n.next = nil
}

// back returns the least recently used node, or nil.
func (l *lruList[K, V]) back() *node[K, V] {
	return l.tail
}

func (l *lruList[K, V]) clear() {
	l.head = nil
	l.tail = nil
}
