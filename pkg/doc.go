// Package pkg holds the wsgraph libraries.
//
// # Overview
//
// wsgraph reads the package manifests of a monorepo workspace and draws how
// its packages depend on each other. The data flow is:
//
//	workspace manifests (lerna.json, package.json, pnpm-workspace.yaml, Cargo.toml)
//	         ↓
//	    [workspace] package (discover members and their declared dependencies)
//	         ↓
//	    [depgraph] package (depth-bounded graph of in-workspace dependencies)
//	         ↓
//	    [render/nodelink] package (Graphviz DOT) or [io] package (JSON)
//	         ↓
//	    [render] package (SVG/PNG/JPG/PDF via Graphviz, memoized by [cache])
//
// [pipeline] runs these stages for both the CLI and the HTTP server.
// [errors] carries the error codes shared by all of them, and
// [observability] lets applications count builds, renders and cache hits.
package pkg
