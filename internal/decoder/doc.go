// Package decoder implements source file decoders and their factory.
//
// This package converts raw file bytes from the three recognized source
// formats into records of the canonical field shape (name, height, weight).
//
// # Supported Formats
//
//   - CSV: comma-delimited rows with a header line; each data row maps to one
//     record keyed by the header names
//   - JSON: a single object array, or JSON Lines (one object per payload
//     position); each object maps to one record
//   - XML: an element tree with one repeated element tag; each element's
//     child elements map to one record's fields
//
// # Decoder Factory
//
// The factory dispatches by file extension:
//
//	factory := decoder.NewFactory()
//	dec, ok := factory.ForFile("people/source1.csv")
//	if !ok {
//	    // unrecognized extension, file is ignored
//	}
//	records, err := dec.Decode(data)
//
// # Permissive Field Handling
//
// Decoders never reject a record for a missing field: a record lacking
// "weight" is returned with that field absent, and the absence survives all
// the way into the output artifact. An error is returned only when the
// payload cannot be interpreted as the declared format at all, in which case
// the caller skips that file's contribution.
//
// # Thread Safety
//
// Decoder instances are stateless and safe for concurrent use; the extractor
// invokes them from one goroutine per file.
package decoder
