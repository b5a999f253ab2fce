// Package memory provides in-process implementations of the store interfaces.
//
// The stores keep records in maps guarded by a mutex and hand out copies, so
// callers can never mutate stored state without going through Update. They
// back the "memory" database driver and the service scenario tests.
package memory
