package edition

// Subscribe registers fn to run after every change to the model. The
// returned function removes the listener.
func (m *Model) Subscribe(fn func()) (unsubscribe func()) {
	if m.listeners == nil {
		m.listeners = make(map[int]func())
	}
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		delete(m.listeners, id)
	}
}

// BeginUpdate suppresses change notifications until the returned function is
// called. Scopes nest; when the outermost one ends, listeners run once if
// anything changed inside it. Calling the returned function more than once
// has no further effect.
//
//	end := model.BeginUpdate()
//	defer end()
func (m *Model) BeginUpdate() (end func()) {
	m.updateDepth++
	done := false
	return func() {
		if done {
			return
		}
		done = true
		m.updateDepth--
		if m.updateDepth == 0 && m.pending {
			m.pending = false
			m.notify()
		}
	}
}

// Batch runs fn inside a single update scope.
func (m *Model) Batch(fn func(*Model)) {
	end := m.BeginUpdate()
	defer end()
	fn(m)
}

func (m *Model) changed() {
	m.editions = nil
	if m.updateDepth > 0 {
		m.pending = true
		return
	}
	m.notify()
}

func (m *Model) notify() {
	for _, fn := range m.listeners {
		fn()
	}
}
