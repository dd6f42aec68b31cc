package model

// MoveGate vetoes a move of child under newParent by returning false.
type MoveGate func(child, newParent *JavaInfo) bool

// TemplateHook may rewrite an association template before the built-in
// placeholders are substituted.
type TemplateHook func(child *JavaInfo, source string) (string, error)

// Events is the event queue of one component tree. It is owned by the root
// component and replaces ambient listener registration: actions are keyed
// by the component that triggers them and fire at most once.
//
// Work that must happen after the current delete or move pass has finished
// is queued with Defer and runs when the outermost pass ends, on the same
// goroutine.
type Events struct {
	moveGates     []MoveGate
	templateHooks []TemplateHook
	beforeDelete  map[*JavaInfo][]func() error
	moved         map[*JavaInfo][]func(oldParent, newParent *JavaInfo) error
	deferred      []func() error
	depth         int
}

func newEvents() *Events {
	return &Events{
		beforeDelete: make(map[*JavaInfo][]func() error),
		moved:        make(map[*JavaInfo][]func(oldParent, newParent *JavaInfo) error),
	}
}

func (ev *Events) AddMoveGate(gate MoveGate) {
	ev.moveGates = append(ev.moveGates, gate)
}

// CanMove asks every gate; a single veto wins.
func (ev *Events) CanMove(child, newParent *JavaInfo) bool {
	for _, gate := range ev.moveGates {
		if !gate(child, newParent) {
			return false
		}
	}
	return true
}

func (ev *Events) AddTemplateHook(hook TemplateHook) {
	ev.templateHooks = append(ev.templateHooks, hook)
}

// RewriteTemplate runs the template hooks in registration order.
func (ev *Events) RewriteTemplate(child *JavaInfo, source string) (string, error) {
	for _, hook := range ev.templateHooks {
		var err error
		if source, err = hook(child, source); err != nil {
			return "", err
		}
	}
	return source, nil
}

// OnBeforeDelete registers a one-shot action fired when trigger is about to
// be deleted.
func (ev *Events) OnBeforeDelete(trigger *JavaInfo, action func() error) {
	ev.beforeDelete[trigger] = append(ev.beforeDelete[trigger], action)
}

// OnMoved registers a one-shot action fired after trigger was moved.
func (ev *Events) OnMoved(trigger *JavaInfo, action func(oldParent, newParent *JavaInfo) error) {
	ev.moved[trigger] = append(ev.moved[trigger], action)
}

// Defer queues action to run when the outermost pass ends. Outside of a
// pass it runs immediately.
func (ev *Events) Defer(action func() error) error {
	if ev.depth == 0 {
		return action()
	}
	ev.deferred = append(ev.deferred, action)
	return nil
}

// Pending reports the number of queued deferred actions.
func (ev *Events) Pending() int {
	return len(ev.deferred)
}

func (ev *Events) beginPass() {
	ev.depth++
}

// endPass closes a pass; the outermost one drains the deferred queue,
// including actions queued while draining.
func (ev *Events) endPass() error {
	ev.depth--
	if ev.depth > 0 {
		return nil
	}
	var firstErr error
	for len(ev.deferred) > 0 {
		action := ev.deferred[0]
		ev.deferred = ev.deferred[1:]
		ev.depth++
		err := action()
		ev.depth--
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (ev *Events) fireBeforeDelete(j *JavaInfo) error {
	actions := ev.beforeDelete[j]
	delete(ev.beforeDelete, j)
	for _, action := range actions {
		if err := action(); err != nil {
			return err
		}
	}
	return nil
}

func (ev *Events) fireMoved(j, oldParent, newParent *JavaInfo) error {
	actions := ev.moved[j]
	delete(ev.moved, j)
	for _, action := range actions {
		if err := action(oldParent, newParent); err != nil {
			return err
		}
	}
	return nil
}
