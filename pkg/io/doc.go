// Package io provides JSON import and export for drawing models.
//
// The format mirrors the entity shape used by browser-side DXF parsers, so
// drawings parsed elsewhere can be rendered without going through DXF:
//
//	{
//	  "entities": [
//	    {"type": "LINE", "vertices": [{"x": 0, "y": 0}, {"x": 10, "y": 5}]},
//	    {"type": "CIRCLE", "center": {"x": 5, "y": 5}, "radius": 2, "lineweight": 35},
//	    {"type": "INSERT", "name": "DOOR", "position": {"x": 3, "y": 0}, "rotation": 90}
//	  ],
//	  "blocks": {
//	    "DOOR": {"name": "DOOR", "entities": [ ... ]}
//	  }
//	}
//
// # Entity Fields
//
// Common to every entity:
//   - type: LINE, POLYLINE, LWPOLYLINE, CIRCLE, ARC, ELLIPSE, SPLINE or INSERT
//   - visible: false hides the entity (default true)
//   - lineweight: hundredths of a drawing unit
//
// Per type:
//   - LINE, POLYLINE, LWPOLYLINE: vertices; shape (closed flag) for polylines
//   - CIRCLE: center, radius
//   - ARC: center, radius, startAngle, endAngle (degrees)
//   - ELLIPSE: center, majorAxisEndPoint (relative to center), axisRatio,
//     startParam, endParam (radians, default 2π), counterClockwise
//   - SPLINE: controlPoints
//   - INSERT: name or blockName, position, rotation (degrees), xScale, yScale
//
// Entities of other types are skipped on import.
//
// # Import
//
// Use [ImportJSON] to read a file, or [ReadJSON] for any io.Reader:
//
//	m, err := io.ImportJSON("plan.json")
//
// # Export
//
// Use [ExportJSON] or [WriteJSON]. Export followed by import reproduces the
// model exactly, which is what the pipeline relies on when hashing models for
// the artifact cache.
package io
