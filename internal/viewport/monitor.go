package viewport

// Monitor tracks whether a Signal is below one breakpoint.
//
// A Monitor registers exactly one handler when mounted and keeps its
// Subscription, so Unmount always releases the same handler that Mount
// registered. Resizes only update the narrow flag and call onChange when
// the flag flips; they never trigger other work.
//
// Example:
//
//	w := viewport.NewWindow(8)
//	m := viewport.Mount(w, 720, func(narrow bool) {
//	    log.Printf("narrow: %v", narrow)
//	})
//	defer m.Unmount()
//
//	w.Resize(80)  // 640 units: narrow, onChange(true)
//	w.Resize(120) // 960 units: wide, onChange(false)
//
// The zero value is not usable; a nil *Monitor reports not narrow and
// unmounts as a no-op.
type Monitor struct {
	signal    Signal
	threshold int
	narrow    bool
	sub       Subscription
	onChange  func(narrow bool)
}

// Mount evaluates the breakpoint once and subscribes to resizes. Narrow
// means width < threshold.
// onChange, if non-nil, is called when the narrow flag flips; it is not
// called for the initial evaluation.
func Mount(s Signal, threshold int, onChange func(narrow bool)) *Monitor {
	m := &Monitor{
		signal:    s,
		threshold: threshold,
		narrow:    IsNarrow(s, threshold),
		onChange:  onChange,
	}
	m.sub = s.Subscribe(m.handle)
	return m
}

// handle is the single resize handler registered by this mount. It only
// updates the narrow flag.
func (m *Monitor) handle(width int) {
	narrow := width < m.threshold
	if narrow == m.narrow {
		return
	}
	m.narrow = narrow
	if m.onChange != nil {
		m.onChange(narrow)
	}
}

// Narrow reports whether the last seen width was below the threshold.
func (m *Monitor) Narrow() bool {
	if m == nil {
		return false
	}
	return m.narrow
}

// Threshold returns the breakpoint in width-units.
func (m *Monitor) Threshold() int {
	return m.threshold
}

// Mounted reports whether the resize handler is still registered.
func (m *Monitor) Mounted() bool {
	return m != nil && m.sub != nil
}

// Unmount releases the resize handler. It is safe to call more than once.
func (m *Monitor) Unmount() {
	if m == nil || m.sub == nil {
		return
	}
	m.sub.Unsubscribe()
	m.sub = nil
}
