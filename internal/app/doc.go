// Package app wires the schemagen pipeline: load the schema, apply the
// configured patches, resolve, generate and store the files.
package app
