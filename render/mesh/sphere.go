package mesh

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Sphere tessellates a Z-up UV sphere. Stacks run from the north pole
// (+Z) to the south pole, sectors around the Z axis.
func Sphere(radius float32, stacks, sectors int) (*Mesh, error) {
	if radius <= 0 || stacks < 2 || sectors < 3 {
		return nil, fmt.Errorf("%w: sphere radius=%v stacks=%d sectors=%d", ErrInvalid, radius, stacks, sectors)
	}

	sectorStep := 2 * math32.Pi / float32(sectors)
	stackStep := math32.Pi / float32(stacks)
	lengthInv := 1 / radius

	m := &Mesh{
		Vertices: make([]Vertex, 0, (stacks+1)*(sectors+1)),
		Indices:  make([]uint32, 0, 6*sectors*(stacks-1)),
	}

	for stack := 0; stack <= stacks; stack++ {
		stackAngle := math32.Pi/2 - float32(stack)*stackStep
		xy := radius * math32.Cos(stackAngle)
		z := radius * math32.Sin(stackAngle)

		// sectors+1 vertices per stack: the seam is duplicated for texcoords
		for sector := 0; sector <= sectors; sector++ {
			sectorAngle := float32(sector) * sectorStep
			x := xy * math32.Cos(sectorAngle)
			y := xy * math32.Sin(sectorAngle)

			m.Vertices = append(m.Vertices, Vertex{
				Position: mgl32.Vec3{x, y, z},
				Normal:   mgl32.Vec3{x * lengthInv, y * lengthInv, z * lengthInv},
				TexCoord: mgl32.Vec2{float32(sector) / float32(sectors), float32(stack) / float32(stacks)},
			})
		}
	}

	for stack := 0; stack < stacks; stack++ {
		k1 := uint32(stack * (sectors + 1))
		k2 := k1 + uint32(sectors) + 1

		for sector := 0; sector < sectors; sector, k1, k2 = sector+1, k1+1, k2+1 {
			// the pole stacks collapse to a single triangle per sector
			if stack != 0 {
				m.Indices = append(m.Indices, k1, k2, k1+1)
			}
			if stack != stacks-1 {
				m.Indices = append(m.Indices, k1+1, k2, k2+1)
			}
		}
	}

	return m, nil
}
