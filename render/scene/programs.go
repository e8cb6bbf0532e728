package scene

import (
	"fmt"
	"io/fs"

	"github.com/neonlabs/neon/render/gfx"
	"github.com/neonlabs/neon/render/shaders"
)

// Programs is the shader set shared by every drawable.
type Programs struct {
	Sphere  gfx.ShaderProgram
	Terrain gfx.ShaderProgram
	Skybox  gfx.ShaderProgram
	Shadow  gfx.ShaderProgram
	Font    gfx.ShaderProgram
}

type programEntry struct {
	src  shaders.Program
	prog *gfx.ShaderProgram
}

func (p *Programs) entries() []programEntry {
	return []programEntry{
		{shaders.Sphere, &p.Sphere},
		{shaders.Terrain, &p.Terrain},
		{shaders.Skybox, &p.Skybox},
		{shaders.Shadow, &p.Shadow},
		{shaders.Font, &p.Font},
	}
}

// Load builds every program from fsys. On failure the programs built so
// far are destroyed.
func (p *Programs) Load(fsys fs.FS) error {
	for _, e := range p.entries() {
		if err := e.prog.Create(fsys, e.src.Vertex, e.src.Fragment); err != nil {
			p.Destroy()
			return fmt.Errorf("load %s program: %w", e.src.Name, err)
		}
	}
	return nil
}

// Reload rebuilds the programs that use file and returns their names.
// A program that fails to rebuild keeps running its previous version.
func (p *Programs) Reload(fsys fs.FS, file string) ([]string, error) {
	var reloaded []string
	for _, e := range p.entries() {
		if !e.src.Uses(file) {
			continue
		}
		if err := e.prog.Reload(fsys, e.src.Vertex, e.src.Fragment); err != nil {
			return reloaded, fmt.Errorf("reload %s program: %w", e.src.Name, err)
		}
		reloaded = append(reloaded, e.src.Name)
	}
	return reloaded, nil
}

func (p *Programs) Destroy() {
	for _, e := range p.entries() {
		e.prog.Destroy()
	}
}
