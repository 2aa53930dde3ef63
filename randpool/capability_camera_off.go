//go:build !camera

package randpool

// HasCamera reports whether this build was compiled with camera support
// (the camera build tag). It mirrors the original generator's
// compile-time WITH_OPENCV flag.
const HasCamera = false
