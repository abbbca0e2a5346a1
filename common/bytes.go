package common

import (
	"unsafe"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any fixed-size element type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// ValueToBytes reinterprets a pointer to a fixed-size value (a vector, a matrix) as a raw byte slice.
// The returned slice aliases the value.
//
// Parameters:
//   - v: pointer to the value to view
//
// Returns:
//   - []byte: byte view of *v with length equal to its size in memory
func ValueToBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}
