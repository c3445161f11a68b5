// Package formats provides parsers for 3D mesh file formats.
//
// Parsers fill a model.Model in place so the caller owns its storage and can
// reuse it across reloads.
package formats
