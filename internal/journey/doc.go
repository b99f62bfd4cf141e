// Package journey implements the orchestration engine behind a keepsake
// session.
//
// # Tiers
//
// A session has two tiers of navigation:
//   - Steps: UNLOCK through FINAL. One-way; a step advances only when its
//     collaborator reports completion.
//   - Scenes: GARDEN through LETTER, mounted once the journey reaches FINAL.
//     Users move forward and back, except that an interactive scene
//     (QUIZ, SCANNER, CAROUSEL, CONSTELLATION, CONTRACT, PROMISE, SCRATCH)
//     cannot be left forward until it has been completed.
//
// # Refused transitions
//
// Disallowed moves are no-ops. Next, Previous and Advance swallow the
// refusal; TryNext, TryPrevious and TryAdvance return a *RejectedError that
// unwraps to ErrSceneLocked, ErrAtBoundary or ErrNotMounted. Either way a
// transition_rejected Event is published so integrators can surface
// feedback.
//
// # Concurrency
//
// Nothing here locks. A Session must be driven from one goroutine, such as
// a bubbletea Update loop. Readers on other goroutines should consume
// Snapshots published by an Observer.
package journey
