package dispatch

// Collection holds the attached Listeners, indexed by UID, together with
// one PriorityQueue per message name.
//
// A message name gets its PriorityQueue when the first Listener for it is
// added, and keeps it even after all its Listeners have been removed.
type Collection struct {
	listeners map[UID]Listener
	queues    map[string]*PriorityQueue
}

// NewCollection returns an empty Collection.
func NewCollection() *Collection {
	return &Collection{
		listeners: make(map[UID]Listener),
		queues:    make(map[string]*PriorityQueue),
	}
}

// Add stores the Listener and returns the UID generated for it.
func (c *Collection) Add(l Listener) UID {
	uid := newUID()
	c.listeners[uid] = l

	queue, ok := c.queues[l.messageName]
	if !ok {
		queue = NewPriorityQueue()
		c.queues[l.messageName] = queue
	}

	queue.Insert(uid, l.priority)

	return uid
}

// Get returns the Listener with the specified UID.
//
// A ListenerNotAvailableError is returned if no Listener has that UID.
func (c *Collection) Get(uid UID) (Listener, error) {
	l, ok := c.listeners[uid]
	if !ok {
		return Listener{}, ListenerNotAvailableError{UID: uid}
	}

	return l, nil
}

// Has reports whether a Listener with the specified UID is in the Collection.
func (c *Collection) Has(uid UID) bool {
	_, ok := c.listeners[uid]
	return ok
}

// Remove removes the Listener with the specified UID.
//
// A ListenerNotAvailableError is returned if no Listener has that UID.
func (c *Collection) Remove(uid UID) error {
	l, ok := c.listeners[uid]
	if !ok {
		return ListenerNotAvailableError{UID: uid}
	}

	delete(c.listeners, uid)

	if queue, ok := c.queues[l.messageName]; ok {
		queue.Remove(uid)
	}

	return nil
}

// HasListeners reports whether a Listener has ever been added for the message name.
//
// It keeps returning true after all the Listeners of the message name
// have been removed.
func (c *Collection) HasListeners(messageName string) bool {
	_, ok := c.queues[messageName]
	return ok
}

// Listeners returns the Listeners of the message name, in invocation order.
//
// A ListenersNotAvailableError is returned if HasListeners is false
// for the message name. The returned slice is empty, and not nil, when all
// the Listeners of the message name have been removed.
func (c *Collection) Listeners(messageName string) ([]Listener, error) {
	attached, err := c.attached(messageName)
	if err != nil {
		return nil, err
	}

	listeners := make([]Listener, 0, len(attached))
	for _, l := range attached {
		listeners = append(listeners, l.Listener)
	}

	return listeners, nil
}

type attachedListener struct {
	Listener

	uid UID
}

// attached returns the Listeners of the message name together with their UID,
// in invocation order.
func (c *Collection) attached(messageName string) ([]attachedListener, error) {
	queue, ok := c.queues[messageName]
	if !ok {
		return nil, ListenersNotAvailableError{MessageName: messageName}
	}

	listeners := make([]attachedListener, 0, queue.Len())

	for uid := range queue.All() {
		l, err := c.Get(uid)
		if err != nil {
			return nil, err
		}

		listeners = append(listeners, attachedListener{Listener: l, uid: uid})
	}

	return listeners, nil
}

// Len returns the number of Listeners in the Collection.
func (c *Collection) Len() int { return len(c.listeners) }
