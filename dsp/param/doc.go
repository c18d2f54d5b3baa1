// Package param provides a lock-free parameter store for real-time audio.
//
// Every parameter is described once by a [Descriptor] and registered into a
// [Store], which hands back a dense [ID]. Values live in one atomic word per
// parameter, so the audio goroutine can read them while a control goroutine
// writes, without locks and without tearing a single value.
//
// Registration must finish before the store is shared between goroutines.
// Writes to several parameters are not transactional: a reader may observe
// a mix of old and new values across parameters.
//
// String keys are the external identity of a parameter (presets, state
// blobs, command lines). IDs are the fast internal handle.
package param
