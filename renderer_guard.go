package neon

import (
	"fmt"
)

// RendererTag marks that a module drawing to the window has been installed.
// Only one may be installed, since each clears and owns the default framebuffer.
type RendererTag struct {
	Name string
}

// ensureSingleRenderer panics if a renderer other than name is installed.
func ensureSingleRenderer(app *App, name string) {
	if tag, ok := Resource[RendererTag](app); ok {
		if tag.Name != name {
			app.Logger().Errorf("Multiple renderers installed: %s and %s", tag.Name, name)
			panic(fmt.Sprintf("Multiple renderers installed: %s and %s", tag.Name, name))
		}
		return
	}
	app.addResources(&RendererTag{Name: name})
}
