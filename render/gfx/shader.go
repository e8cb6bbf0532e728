package gfx

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// CompileError carries the GL info log of a failed compile or link.
type CompileError struct {
	Stage string
	Name  string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("gfx: %s %s failed: %s", e.Name, e.Stage, strings.TrimSpace(e.Log))
}

// ShaderProgram is a linked vertex + fragment program. Uniform locations
// are looked up once per name and cached.
type ShaderProgram struct {
	id       uint32
	uniforms map[string]int32
}

// Create reads both stages from fsys, compiles and links them.
func (p *ShaderProgram) Create(fsys fs.FS, vertexPath, fragmentPath string) error {
	if p.Valid() {
		return ErrAlreadyCreated
	}
	id, err := buildProgram(fsys, vertexPath, fragmentPath)
	if err != nil {
		return err
	}
	p.id = id
	p.uniforms = make(map[string]int32)
	return nil
}

// Reload rebuilds the program from fsys. On failure the current program
// stays in use and the error is returned.
func (p *ShaderProgram) Reload(fsys fs.FS, vertexPath, fragmentPath string) error {
	id, err := buildProgram(fsys, vertexPath, fragmentPath)
	if err != nil {
		return err
	}
	p.Destroy()
	p.id = id
	p.uniforms = make(map[string]int32)
	return nil
}

func buildProgram(fsys fs.FS, vertexPath, fragmentPath string) (uint32, error) {
	vs, err := fs.ReadFile(fsys, vertexPath)
	if err != nil {
		return 0, fmt.Errorf("read vertex shader: %w", err)
	}
	fsrc, err := fs.ReadFile(fsys, fragmentPath)
	if err != nil {
		return 0, fmt.Errorf("read fragment shader: %w", err)
	}
	return linkSources(vertexPath+"+"+fragmentPath, string(vs), string(fsrc))
}

func linkSources(name, vertexSource, fragmentSource string) (uint32, error) {
	vid, err := compileShader(name, "vertex", vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fid, err := compileShader(name, "fragment", fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vid)
		return 0, err
	}

	id := gl.CreateProgram()
	gl.AttachShader(id, vid)
	gl.AttachShader(id, fid)
	gl.LinkProgram(id)

	gl.DetachShader(id, vid)
	gl.DetachShader(id, fid)
	gl.DeleteShader(vid)
	gl.DeleteShader(fid)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(id, n, nil, gl.Str(log))
		gl.DeleteProgram(id)
		return 0, &CompileError{Stage: "link", Name: name, Log: strings.TrimRight(log, "\x00")}
	}

	if err := CheckError("shader program create"); err != nil {
		gl.DeleteProgram(id)
		return 0, err
	}
	return id, nil
}

func compileShader(name, stage, source string, kind uint32) (uint32, error) {
	id := gl.CreateShader(kind)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(id, n, nil, gl.Str(log))
		gl.DeleteShader(id)
		return 0, &CompileError{Stage: stage + " compile", Name: name, Log: strings.TrimRight(log, "\x00")}
	}
	return id, nil
}

func (p *ShaderProgram) Destroy() {
	if !p.Valid() {
		return
	}
	gl.DeleteProgram(p.id)
	p.id = 0
	p.uniforms = nil
}

func (p *ShaderProgram) Valid() bool { return p.id != 0 }

func (p *ShaderProgram) ID() uint32 { return p.id }

func (p *ShaderProgram) Bind() {
	gl.UseProgram(p.id)
}

// AttribLocation returns -1 when name is not an active attribute.
func (p *ShaderProgram) AttribLocation(name string) int32 {
	return gl.GetAttribLocation(p.id, gl.Str(name+"\x00"))
}

// UniformLocation returns -1 when name is not an active uniform.
func (p *ShaderProgram) UniformLocation(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if p.uniforms != nil {
		p.uniforms[name] = loc
	}
	return loc
}

// The setters write through glProgramUniform, so the program does not need
// to be bound. They return false when the uniform is not active.

func (p *ShaderProgram) SetMat4(name string, m mgl32.Mat4) bool {
	loc := p.UniformLocation(name)
	if loc < 0 {
		return false
	}
	gl.ProgramUniformMatrix4fv(p.id, loc, 1, false, &m[0])
	return true
}

func (p *ShaderProgram) SetVec4(name string, v mgl32.Vec4) bool {
	loc := p.UniformLocation(name)
	if loc < 0 {
		return false
	}
	gl.ProgramUniform4fv(p.id, loc, 1, &v[0])
	return true
}

func (p *ShaderProgram) SetVec3(name string, v mgl32.Vec3) bool {
	loc := p.UniformLocation(name)
	if loc < 0 {
		return false
	}
	gl.ProgramUniform3fv(p.id, loc, 1, &v[0])
	return true
}

func (p *ShaderProgram) SetFloat(name string, v float32) bool {
	loc := p.UniformLocation(name)
	if loc < 0 {
		return false
	}
	gl.ProgramUniform1f(p.id, loc, v)
	return true
}

func (p *ShaderProgram) SetInt(name string, v int32) bool {
	loc := p.UniformLocation(name)
	if loc < 0 {
		return false
	}
	gl.ProgramUniform1i(p.id, loc, v)
	return true
}
