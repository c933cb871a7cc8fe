// Package registry maps symbolic identifiers to type and model definitions.
//
// A [Register] is one named lookup table. A [Global] holds many registers by
// name so several schema versions or dialects can live in one process
// without their identifiers colliding. Prefer constructing a Global with
// [NewGlobal] and passing it where it is needed; [Default] exists for
// programs that want a process-wide instance.
//
// All operations are guarded by a read-write mutex. Registration is still
// expected to finish before concurrent readers start: overwriting an id
// while another goroutine serializes with the old definition is not an
// error, but it is rarely what the caller meant.
package registry
