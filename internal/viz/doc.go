// Package viz is the terminal front end of the sandbox, built on Bubble Tea.
//
//   - [App]: scenario picker and settings screen that launches a live view
//   - [Model]: steps a [sim.Engine] at 60 Hz and draws it beside a stats panel
//   - [Canvas]: braille raster with per-cell colour
//   - [Recorder]: turns canvas frames into an animated GIF
//
// Atoms are filled discs in their element colour, bonds are one line per
// bond order, and gravity wells are rings that shrink as they progress.
//
// # Key Bindings
//
//	Space  - Pause/Resume
//	Arrows - Move the cursor (Shift+hjkl moves faster)
//	Tab    - Next element, i for its next isotope
//	Enter  - Spawn at the cursor
//	g      - Grab or release the molecule under the cursor
//	o      - Open or close a lasso; closing starts a gravity well
//	r / R  - Synthesise the selected recipe / pick the next one
//	+ - 0  - Double, halve or freeze the decay clock
//	G      - Toggle GIF recording
//	t      - Cycle themes
//	?      - Help overlay
//
// The mouse works too: left click grabs an atom or spawns one on empty
// space, right drag draws a lasso.
//
// The engine is not safe for concurrent use, so every engine call happens
// inside Update.
package viz
