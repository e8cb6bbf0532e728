package gfx

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// MaxAttributes is the number of attributes a VertexFormat can hold.
const MaxAttributes = 4

// GL guarantees at least 16 attribute locations.
const maxAttribIndex = 16

type AttribType uint32

const (
	Float        AttribType = gl.FLOAT
	UnsignedByte AttribType = gl.UNSIGNED_BYTE
)

// Size is the byte size of one component, 0 for unsupported types.
func (t AttribType) Size() int {
	switch t {
	case Float:
		return 4
	case UnsignedByte:
		return 1
	}
	return 0
}

type Attribute struct {
	Index      uint32
	Size       int32
	Type       AttribType
	Normalized bool
	Offset     int
}

// VertexFormat describes an interleaved vertex layout.
type VertexFormat struct {
	attributes [MaxAttributes]Attribute
	count      int
	stride     int
}

// AddAttribute appends an attribute at the current end of the vertex.
func (f *VertexFormat) AddAttribute(index uint32, size int32, typ AttribType, normalized bool) error {
	if f.count >= MaxAttributes {
		return fmt.Errorf("vertex format: %w: more than %d attributes", ErrInvalid, MaxAttributes)
	}
	if typ.Size() == 0 {
		return fmt.Errorf("vertex format: %w: attribute type 0x%X", ErrInvalid, uint32(typ))
	}
	if size < 1 || size > 4 {
		return fmt.Errorf("vertex format: %w: attribute size %d", ErrInvalid, size)
	}
	if index >= maxAttribIndex {
		return fmt.Errorf("vertex format: %w: attribute index %d", ErrInvalid, index)
	}

	f.attributes[f.count] = Attribute{
		Index:      index,
		Size:       size,
		Type:       typ,
		Normalized: normalized,
		Offset:     f.stride,
	}
	f.count++
	f.stride += int(size) * typ.Size()
	return nil
}

func (f *VertexFormat) Attributes() []Attribute { return f.attributes[:f.count] }

func (f *VertexFormat) Stride() int { return f.stride }

func (f *VertexFormat) Valid() bool { return f.count > 0 }

// mask of attribute locations currently enabled on the bound VAO
var enabledAttribs uint32

func (f *VertexFormat) mask() uint32 {
	var m uint32
	for _, a := range f.Attributes() {
		m |= 1 << a.Index
	}
	return m
}

// Bind points the attributes at the currently bound array buffer and
// disables locations left enabled by the previous format.
func (f *VertexFormat) Bind() {
	want := f.mask()
	stale := enabledAttribs &^ want
	for i := uint32(0); stale != 0; i++ {
		if stale&(1<<i) != 0 {
			gl.DisableVertexAttribArray(i)
			stale &^= 1 << i
		}
	}

	for _, a := range f.Attributes() {
		gl.EnableVertexAttribArray(a.Index)
		gl.VertexAttribPointer(a.Index, a.Size, uint32(a.Type), a.Normalized, int32(f.stride), gl.PtrOffset(a.Offset))
	}
	enabledAttribs = want
}
