package cache

// lruList maintains cache eviction order: most recently used at the front,
// eviction candidates at the back. Implemented as a doubly linked list with
// sentinel head/tail nodes plus a key index.
type lruList struct {
	head  *lruNode
	tail  *lruNode
	nodes map[string]*lruNode
	size  int
}

type lruNode struct {
	key        string
	prev, next *lruNode
}

func newLRUList() *lruList {
	head := &lruNode{}
	tail := &lruNode{}
	head.next = tail
	tail.prev = head

	return &lruList{
		head:  head,
		tail:  tail,
		nodes: make(map[string]*lruNode),
	}
}

// Touch marks a key as most recently used, inserting it if absent.
func (l *lruList) Touch(key string) {
	if node, exists := l.nodes[key]; exists {
		l.unlink(node)
		l.pushFront(node)
		return
	}

	node := &lruNode{key: key}
	l.nodes[key] = node
	l.pushFront(node)
	l.size++
}

// Remove drops a key from the eviction order.
func (l *lruList) Remove(key string) {
	if node, exists := l.nodes[key]; exists {
		l.unlink(node)
		delete(l.nodes, key)
		l.size--
	}
}

// PopOldest removes and returns the least recently used key.
// Returns the empty string when the list is empty.
func (l *lruList) PopOldest() string {
	if l.size == 0 {
		return ""
	}

	oldest := l.tail.prev
	l.unlink(oldest)
	delete(l.nodes, oldest.key)
	l.size--

	return oldest.key
}

// Len returns the number of tracked keys.
func (l *lruList) Len() int {
	return l.size
}

func (l *lruList) pushFront(node *lruNode) {
	node.next = l.head.next
	node.prev = l.head
	l.head.next.prev = node
	l.head.next = node
}

func (l *lruList) unlink(node *lruNode) {
	node.prev.next = node.next
	node.next.prev = node.prev
}
