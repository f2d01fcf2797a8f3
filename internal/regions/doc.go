// Package regions preserves hand-written code across regenerations.
//
// Generated files carry named regions between sentinel comments:
//
//	// --BEGIN PRE-READ CUSTOM CODE--
//	...hand-written lines...
//	// --END CUSTOM CODE--
//
// Extract captures the lines of each region from the previous contents of
// a file, and the generator writes them back verbatim between fresh
// sentinels. Regions do not nest.
package regions
