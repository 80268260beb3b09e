// Package store persists editor buffers and presentation settings on disk.
//
// Records are msgpack encoded, one file per buffer, and replaced atomically
// through a temporary file. Export writes a buffer out as a plain source file,
// which is how `cppedit buffer export` produces main.cpp.
package store
