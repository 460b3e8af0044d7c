// Package grid is the data-grid facade the snapshot subsystem works against.
//
// The real consistency, replication, and eviction machinery of a data grid
// lives in whatever engine hosts the regions; this package only models what
// import/export needs to see: named regions addressable by full path, whose
// entries can be copied out for an export and loaded back on an import. The
// InMemory implementation backs the CLI and the tests, and doubles as a
// reference for wiring a real engine behind the Region interface.
package grid
