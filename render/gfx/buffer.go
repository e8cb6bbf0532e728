package gfx

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// VertexBuffer is a GL array buffer.
type VertexBuffer struct {
	id   uint32
	size int
}

// Create allocates size bytes and uploads data into them. data may be nil
// to reserve storage that Update fills later.
func (b *VertexBuffer) Create(size int, data []byte) error {
	if b.Valid() {
		return ErrAlreadyCreated
	}
	if len(data) > size {
		size = len(data)
	}

	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	gl.BufferData(gl.ARRAY_BUFFER, size, ptr(data), gl.STATIC_DRAW)
	b.size = size

	if err := CheckError("vertex buffer create"); err != nil {
		b.Destroy()
		return err
	}
	return nil
}

// Update replaces the buffer contents, growing the storage when data does
// not fit.
func (b *VertexBuffer) Update(data []byte) error {
	if !b.Valid() {
		return fmt.Errorf("vertex buffer update: %w", ErrInvalid)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	if len(data) > b.size {
		gl.BufferData(gl.ARRAY_BUFFER, len(data), ptr(data), gl.DYNAMIC_DRAW)
		b.size = len(data)
	} else if len(data) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data), ptr(data))
	}
	return CheckError("vertex buffer update")
}

func (b *VertexBuffer) Destroy() {
	if !b.Valid() {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.DeleteBuffers(1, &b.id)
	b.id = 0
	b.size = 0
}

func (b *VertexBuffer) Valid() bool { return b.id != 0 }

func (b *VertexBuffer) Size() int { return b.size }

func (b *VertexBuffer) Bind() {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
}

// Render draws count vertices starting at vertex start.
func (b *VertexBuffer) Render(primitive Primitive, start, count int) {
	gl.DrawArrays(uint32(primitive), int32(start), int32(count))
}

type IndexType uint32

const (
	UnsignedShort IndexType = gl.UNSIGNED_SHORT
	UnsignedInt   IndexType = gl.UNSIGNED_INT
)

// Size is the byte size of one index, 0 for unknown types.
func (t IndexType) Size() int {
	switch t {
	case UnsignedShort:
		return 2
	case UnsignedInt:
		return 4
	}
	return 0
}

// IndexBuffer is a GL element array buffer.
type IndexBuffer struct {
	id    uint32
	typ   IndexType
	count int
}

// Create uploads raw index data of the given type.
func (b *IndexBuffer) Create(data []byte, typ IndexType) error {
	if b.Valid() {
		return ErrAlreadyCreated
	}
	if typ.Size() == 0 {
		return fmt.Errorf("index buffer create: %w: index type 0x%X", ErrInvalid, uint32(typ))
	}

	b.typ = typ
	b.count = len(data) / typ.Size()

	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.id)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data), ptr(data), gl.STATIC_DRAW)

	if err := CheckError("index buffer create"); err != nil {
		b.Destroy()
		return err
	}
	return nil
}

func (b *IndexBuffer) CreateUint32(indices []uint32) error {
	return b.Create(Bytes(indices), UnsignedInt)
}

func (b *IndexBuffer) Destroy() {
	if !b.Valid() {
		return
	}
	gl.DeleteBuffers(1, &b.id)
	b.id = 0
	b.count = 0
}

func (b *IndexBuffer) Valid() bool { return b.id != 0 }

// Count is the number of indices uploaded by Create.
func (b *IndexBuffer) Count() int { return b.count }

func (b *IndexBuffer) Type() IndexType { return b.typ }

func (b *IndexBuffer) Bind() {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.id)
}

// Render draws count indices beginning at index start.
func (b *IndexBuffer) Render(primitive Primitive, start, count int) {
	gl.DrawElements(uint32(primitive), int32(count), uint32(b.typ), gl.PtrOffset(start*b.typ.Size()))
}
