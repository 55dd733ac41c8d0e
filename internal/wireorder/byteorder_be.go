//go:build s390x || ppc64 || mips || mips64

package wireorder

import "encoding/binary"

// Native returns the native byte order for common big-endian Go ports.
func Native() binary.ByteOrder { return binary.BigEndian }
