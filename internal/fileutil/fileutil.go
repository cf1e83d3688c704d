// Package fileutil provides file permission constants used when writing
// stitched output.
package fileutil

import "os"

// OwnerReadWrite is the permission mode for stitched output files. Output
// may embed documents fetched from authenticated or internal locations, so
// it is not written world-readable.
const OwnerReadWrite os.FileMode = 0o600
