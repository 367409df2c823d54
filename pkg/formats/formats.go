// Package formats provides parsers for text mesh geometry formats.
package formats

// Note: the OBJ subset (v/f records) is implemented in obj.go
// Note: fan triangulation of parsed faces is in triangulate.go
