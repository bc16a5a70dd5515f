// Package viewport tracks the terminal width against breakpoints.
//
// Signal is the environment capability: it reports the current width in
// width-units and delivers resize notifications. Window is the concrete
// Signal the TUI feeds from tea.WindowSizeMsg.
//
// Monitor evaluates one breakpoint. Each mount registers exactly one
// handler and keeps its Subscription; Unmount releases that same handle:
//
//	win := viewport.NewWindow(8)
//	m := viewport.Mount(win, 900, func(narrow bool) { ... })
//	defer m.Unmount()
//	win.Resize(100) // 800 units, narrow
package viewport
