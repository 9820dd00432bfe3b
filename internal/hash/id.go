// Package hash computes the 64-bit keys used by the offset tables.
package hash

import "github.com/cespare/xxhash/v2"

// Key computes the xxHash64 of a native id such as
// "controllerType=0 controllerNumber=1 scan=42".
func Key(id string) uint64 {
	return xxhash.Sum64String(id)
}
