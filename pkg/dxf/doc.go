// Package dxf reads ASCII DXF files into a [drawing.Model].
//
// Only the parts a 2D preview needs are decoded: the ENTITIES section, the
// BLOCKS section, and the entity types LINE, LWPOLYLINE, POLYLINE (with its
// VERTEX and SEQEND records), CIRCLE, ARC, ELLIPSE, SPLINE and INSERT. Every
// other section is skipped and unknown entity types are logged and ignored.
//
// Entity types are decoded by a [Decoder] looked up by type name. Callers can
// add decoders for further types with [Register]; a decoder whose Entity
// method returns nil contributes nothing to the model.
//
// # Usage
//
//	m, err := dxf.ReadFile("plan.dxf")
//	if err != nil {
//		return err // *errors.Error with code PARSE_FAILURE
//	}
//	fmt.Println(len(m.Entities), len(m.Blocks))
//
// Binary DXF is not supported.
package dxf
