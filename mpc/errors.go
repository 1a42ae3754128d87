package mpc

import "errors"

// ErrNonZeroRetriesExceeded is returned by GenerateNonZeroRandomNumber when
// maxNonZeroRetries consecutive local samples were all zero. This
// guards a loop the original scheme left unbounded; in practice the
// probability of this firing against a real prime field is negligible, but
// an infinite retry loop is not an acceptable shape for a library
// function.
var ErrNonZeroRetriesExceeded = errors.New("mpc: exceeded retry budget generating a non-zero random share")

// maxNonZeroRetries bounds GenerateNonZeroRandomNumber's retry loop.
const maxNonZeroRetries = 1000
