// Package wireorder selects the machine's native byte order.
//
// The Wayland wire format is a sequence of 32-bit words in the host's
// native byte order (documented as little-endian on the architectures
// Wayland compositors actually run on). Selection is architecture-specific
// via build tags where commonly known, and falls back to portable runtime
// detection elsewhere.
package wireorder
