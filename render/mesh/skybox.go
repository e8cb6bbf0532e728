package mesh

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// SkyboxCube returns the 36 positions of a unit cube, two triangles per
// face in +X, -X, +Y, -Y, +Z, -Z order. Draw it with face culling off.
func SkyboxCube() []mgl32.Vec3 {
	const q = 1
	return []mgl32.Vec3{
		// x positive
		{q, q, -q}, {q, q, q}, {q, -q, q},
		{q, -q, q}, {q, -q, -q}, {q, q, -q},
		// x negative
		{-q, q, q}, {-q, q, -q}, {-q, -q, -q},
		{-q, -q, -q}, {-q, -q, q}, {-q, q, q},
		// y positive
		{-q, q, q}, {q, q, q}, {q, q, -q},
		{q, q, -q}, {-q, q, -q}, {-q, q, q},
		// y negative
		{-q, -q, -q}, {q, -q, -q}, {q, -q, q},
		{q, -q, q}, {-q, -q, q}, {-q, -q, -q},
		// z negative
		{-q, q, -q}, {q, q, -q}, {q, -q, -q},
		{q, -q, -q}, {-q, -q, -q}, {-q, q, -q},
		// z positive
		{q, q, q}, {-q, q, q}, {-q, -q, q},
		{-q, -q, q}, {q, -q, q}, {q, q, q},
	}
}

func Vec3Bytes(v []mgl32.Vec3) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*int(unsafe.Sizeof(v[0])))
}
