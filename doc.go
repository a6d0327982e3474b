// Package playtime is the interaction choreography engine behind a sequence of
// short toddler mini-games, built for [Ebitengine].
//
// Every mini-game runs the same script: a banner, an engagement cue, a spoken
// prompt, a wait for input, a celebration and an advance to the next prompt.
// Playtime provides the pieces that make that script run on a single frame
// tick: a tween [Animator], a fixed-capacity [ParticlePool], the
// [HintLadder] that guarantees no prompt can stall, the table-driven
// [PhaseMachine], the [Round] orchestrator that every activity instantiates,
// the [ScreenManager], and the [Loop] that drives it all while the [Governor]
// trades particle density for frame rate.
//
// # Quick start
//
//	cfg := playtime.DefaultConfig()
//	mgr := playtime.NewScreenManager(playtime.Context{Config: cfg, Voice: voice})
//	mgr.Register("counting", playtime.NewRound(myActivity, cfg))
//	_ = mgr.GoTo("counting")
//
//	game, err := playtime.NewGame(mgr, playtime.NewLoop(mgr, cfg), playtime.RunConfig{
//		Title: "Playtime", Width: 1280, Height: 800,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(playtime.Run(game))
//
// # Activities
//
// An [Activity] supplies content: a title, a prompt count, prompts with
// clickable targets, and its own art. The [Round] owns timing, input gating,
// hint escalation and particles. Optional interfaces ([Picker], [KeyJudge],
// [Interluder]) let an activity add voice lines, keyboard answers or a
// game-specific phase.
//
// # Rendering
//
// All drawing goes through the immediate-mode [Surface] interface.
// [EbitenSurface] draws to an *ebiten.Image; [Recorder] captures draw calls
// for headless tests.
//
// Easing curves come from [gween].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package playtime
