// Package main hosts the companyscout CLI entrypoint and command graph.
//
// The Cobra command tree scrapes directory listings into company tables,
// previews and deduplicates name columns, and resolves names against the
// public company registry. Configuration and logging are resolved once per
// invocation in commandContext so subcommands only wire internal packages
// together and print results.
//
// Keep this package lean: behaviour belongs in internal packages, and
// commands here translate flags into calls.
package main
