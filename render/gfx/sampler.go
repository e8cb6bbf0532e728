package gfx

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

type Filter int32

const (
	Nearest Filter = gl.NEAREST
	Linear  Filter = gl.LINEAR
)

type Wrap int32

const (
	ClampToEdge    Wrap = gl.CLAMP_TO_EDGE
	Repeat         Wrap = gl.REPEAT
	MirroredRepeat Wrap = gl.MIRRORED_REPEAT
)

// Sampler holds filtering and addressing state independent of any texture.
type Sampler struct {
	id uint32
}

func (s *Sampler) Create(filter Filter, wrapU, wrapV Wrap) error {
	if s.Valid() {
		return ErrAlreadyCreated
	}

	gl.GenSamplers(1, &s.id)
	gl.SamplerParameteri(s.id, gl.TEXTURE_MIN_FILTER, int32(filter))
	gl.SamplerParameteri(s.id, gl.TEXTURE_MAG_FILTER, int32(filter))
	gl.SamplerParameteri(s.id, gl.TEXTURE_WRAP_S, int32(wrapU))
	gl.SamplerParameteri(s.id, gl.TEXTURE_WRAP_T, int32(wrapV))
	gl.SamplerParameteri(s.id, gl.TEXTURE_WRAP_R, int32(wrapV))

	if err := CheckError("sampler create"); err != nil {
		s.Destroy()
		return err
	}
	return nil
}

func (s *Sampler) Destroy() {
	if !s.Valid() {
		return
	}
	gl.DeleteSamplers(1, &s.id)
	s.id = 0
}

func (s *Sampler) Valid() bool { return s.id != 0 }

func (s *Sampler) Bind(unit uint32) {
	gl.BindSampler(unit, s.id)
}

// UnbindSampler clears the sampler on unit so the bound texture's own
// parameters apply.
func UnbindSampler(unit uint32) {
	gl.BindSampler(unit, 0)
}
