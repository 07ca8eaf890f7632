// Package playback schedules letter repeat cycles against a speech engine.
// All timing runs on timer continuations so callers never block, and every
// new request cancels the previous schedule through a monotonic token.
package playback
