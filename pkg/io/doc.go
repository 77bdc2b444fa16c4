// Package io provides JSON persistence for netgraph stores, plus importers for
// older data.
//
// # Overview
//
// A graph is saved as a single versioned JSON document. The format is
// designed for:
//
//   - Deterministic output: equal stores encode to equal bytes
//   - Forward evolution: an explicit version and documented field defaults
//   - Undo snapshots: the history package stores exactly these bytes
//
// # JSON Format
//
//	{
//	  "version": 1,
//	  "nodes": [
//	    {
//	      "id": "8c1f…",
//	      "name": "A",
//	      "colour": "White",
//	      "shape": "dot",
//	      "notes": "",
//	      "links": [{"to": "<id of B>", "message": "path"}]
//	    },
//	    {"id": "<id of B>", "name": "B", "colour": "Red", "shape": "box", "notes": "", "links": []}
//	  ]
//	}
//
// Nodes are sorted by name. A link is stored once, on the node it was created
// from, and refers to its target by id.
//
// # Defaults
//
// Fields missing from a document take these values:
//
//   - version: 1
//   - notes: ""
//   - links: none
//   - colour: White
//   - shape: dot
//
// A version greater than [Version] is rejected with CORRUPT_DATA.
//
// # Legacy Formats
//
// [ImportPickle] reads the .pjson object dumps written by the previous
// editor. [ImportCSV] builds a graph from an areas table and a network table
// in the fog gate spreadsheet layout.
package io
