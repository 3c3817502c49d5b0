// Package workspace discovers the packages of a multi-package repository.
//
// # Overview
//
// [Discover] inspects a directory for one of the supported workspace layouts
// and returns every member package with its declared dependencies. The
// result is the package index the graph builder consumes through
// [Workspace.Records].
//
//	ws, err := workspace.Discover(ctx, ".", workspace.Options{})
//	if err != nil {
//	    return err
//	}
//	g := depgraph.Build(ws.Records(workspace.KindProd), depgraph.Options{MaxDepth: 3})
//
// # Layouts
//
// Layouts are probed in order and the first match wins:
//
//   - [KindLerna]: lerna.json "packages" globs (default "packages/*")
//   - [KindNPM]: package.json "workspaces" (npm, yarn, bun)
//   - [KindPNPM]: pnpm-workspace.yaml "packages"
//   - [KindCargo]: Cargo.toml [workspace] members
//
// Member patterns are matched with doublestar, so "packages/**" finds nested
// packages. Patterns prefixed with "!" exclude matches. node_modules and
// target directories are never searched.
//
// # Dependency kinds
//
// Each [Package] keeps production, dev and peer dependencies apart.
// [Package.Record] flattens the requested [DepKind] set into a sorted list
// of names. Versions are retained for labels only.
package workspace
