// Package shaders embeds the default GLSL 410 programs.
package shaders

import (
	"embed"
	"io/fs"
)

//go:embed glsl/*.vert glsl/*.frag
var embedded embed.FS

// Program names the vertex and fragment files of one program, relative to
// the shader root.
type Program struct {
	Name     string
	Vertex   string
	Fragment string
}

var (
	Sphere  = Program{Name: "sphere", Vertex: "sphere.vert", Fragment: "sphere.frag"}
	Terrain = Program{Name: "terrain", Vertex: "terrain.vert", Fragment: "terrain.frag"}
	Skybox  = Program{Name: "skybox", Vertex: "skybox.vert", Fragment: "skybox.frag"}
	Shadow  = Program{Name: "shadow", Vertex: "shadow.vert", Fragment: "shadow.frag"}
	Font    = Program{Name: "font", Vertex: "font.vert", Fragment: "font.frag"}
)

// All lists every default program.
func All() []Program {
	return []Program{Sphere, Terrain, Skybox, Shadow, Font}
}

// Uses reports whether file is one of the program's stages.
func (p Program) Uses(file string) bool {
	return file == p.Vertex || file == p.Fragment
}

// FS returns the embedded shader root.
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "glsl")
	if err != nil {
		panic(err)
	}
	return sub
}
