// Package app contains the core application logic. It defines the main App
// struct, wires the grid, property sources, and snapshot service together,
// and drives the import-on-startup / export-on-shutdown lifecycle, decoupled
// from any specific entrypoint like a CLI.
package app
