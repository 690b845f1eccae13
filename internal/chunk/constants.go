package chunk

const (
	// mirrorFactor is the storage multiple of a mirrored ring.
	mirrorFactor = 2
)
