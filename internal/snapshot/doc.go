// Package snapshot moves region data in and out of a grid.
//
// An export walks a region, encodes its entries as JSON, and writes them to
// a resolved resource; an import is the reverse. Where a snapshot lives is
// decided per region by a ResourceResolver: either a configured template
// expression (evaluated against the region name and the property source) or
// a computed default under a resolver-specific base path.
//
// The two directions deliberately fail differently. Exports are best effort
// about their target: a missing or unwritable location only warns, and the
// writer creates the file on demand, surfacing real write failures at write
// time. Imports fail fast: a missing or unreadable source is a hard error,
// because there is nothing meaningful to import from.
package snapshot
