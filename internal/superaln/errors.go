package superaln

import "errors"

// Pipeline failures are unrecoverable for the run; these sentinels let
// callers and tests tell the failure classes apart with errors.Is.
var (
	// ErrInputFormat flags a malformed or empty sequence record file
	ErrInputFormat = errors.New("invalid sequence record file")

	// ErrLengthMismatch flags sequences of unequal width inside one alignment
	ErrLengthMismatch = errors.New("sequence lengths differ")

	// ErrPartitionDecode flags a malformed line in the partition table
	ErrPartitionDecode = errors.New("malformed partition line")

	// ErrNoInformativeSites flags an identity computation whose denominator
	// dropped to zero
	ErrNoInformativeSites = errors.New("no informative sites between sequences")
)
