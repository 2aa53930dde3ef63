//go:build microphone

package randpool

// HasMicrophone reports whether this build was compiled with microphone
// support (the microphone build tag). It mirrors the original
// generator's compile-time WITH_PORTAUDIO flag.
const HasMicrophone = true
