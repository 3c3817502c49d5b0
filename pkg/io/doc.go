// Package io provides JSON import and export for workspace dependency graphs.
//
// # JSON Format
//
//	{
//	  "nodes": [
//	    {"name": "app", "root": true, "version": "1.0.0"},
//	    {"name": "lib"}
//	  ],
//	  "edges": [
//	    {"from": "app", "to": "lib"}
//	  ]
//	}
//
// Nodes are sorted by name and edges by source then target, so exporting
// the same graph twice yields identical bytes. "root" and "version" are
// omitted when false or unknown.
//
// # Export
//
// Use [WriteJSON] to write a graph to any io.Writer, or [ExportJSON] for a
// file. [FromGraph] returns the document without encoding it.
//
// # Import
//
// [ReadJSON] and [ImportJSON] decode a document and check that every edge
// references a declared node and that no name is declared twice.
// [Document.Records] turns it back into builder input, which is how
// "wsgraph render" re-draws an exported graph.
package io
