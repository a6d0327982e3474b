package playtime

// syntheticEvent is a single injected click or key press. Coordinates are
// logical, matching what a screenshot shows.
type syntheticEvent struct {
	click bool
	x, y  float64
	key   Key
}

// InjectClick queues a click at (x, y). It is delivered on the next Update,
// one event per frame, in place of real input.
func (g *Game) InjectClick(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{click: true, x: x, y: y})
}

// InjectKey queues a key press.
func (g *Game) InjectKey(k Key) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{key: k})
}

// Pending returns the number of injected events not yet delivered.
func (g *Game) Pending() int { return len(g.injectQueue) }

// processInjectedInput pops one event from the inject queue and delivers it
// to the screen manager. Returns true if an event was consumed (real input
// should be skipped).
func (g *Game) processInjectedInput() bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	evt := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	if evt.click {
		g.manager.HandleClick(evt.x, evt.y)
	} else {
		g.manager.HandleKey(evt.key)
	}
	return true
}
