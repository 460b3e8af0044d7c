// Package resource abstracts where snapshot data lives.
//
// A Resource is a handle to bytes at a scheme-prefixed location such as
// "file:/var/data/data-sessions.json" or "bundle:seed/data-catalog.json".
// Handles are cheap to construct and carry no open file descriptors; callers
// probe Exists/Readable/Writable first and only then Open or Create.
//
// The SchemeLoader maps location prefixes to backends. Locations without a
// scheme resolve against the bundle, a read-only fs.FS that plays the role
// of packaged application assets (the working directory by default, an
// embed.FS in deployments that ship their seed data inside the binary).
package resource
