package playtime

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Key    string  `json:"key,omitempty"`
	Screen string  `json:"screen,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input, screen changes and screenshots across
// frames for scripted play sessions. Attach to a Game via SetTestRunner.
//
// Actions: "click" (x, y), "key" (key), "wait" (frames), "screenshot"
// (label), "goto" (screen).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Game via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "wait", "screenshot":
		case "key":
			if st.Key == "" {
				return nil, fmt.Errorf("parse test script: step %d: key action without key", i)
			}
		case "goto":
			if st.Screen == "" {
				return nil, fmt.Errorf("parse test script: step %d: goto action without screen", i)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the game. The runner's step method
// is called from Game.Update before input each frame.
func (g *Game) SetTestRunner(runner *TestRunner) {
	g.runner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Err returns the first error a step produced, such as a goto to an unknown
// screen. The runner keeps going after an error.
func (r *TestRunner) Err() error {
	return r.err
}

// step advances the test runner by one frame. Called from Game.Update.
func (r *TestRunner) step(g *Game) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(g.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		g.Screenshot(st.Label)
	case "click":
		g.InjectClick(st.X, st.Y)
	case "key":
		g.InjectKey(Key(st.Key))
	case "goto":
		if err := g.manager.GoTo(st.Screen); err != nil && r.err == nil {
			r.err = err
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(g.injectQueue) == 0 {
		r.done = true
	}
}
