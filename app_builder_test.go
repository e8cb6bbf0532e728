package neon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockModule struct {
	installed bool
	order     *[]string
	name      string
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
	if m.order != nil {
		*m.order = append(*m.order, m.name)
	}
}

func TestAppBuilder_Stateless(t *testing.T) {
	builder := NewAppBuilder()
	app := builder.Build()

	if app.stateful != false {
		t.Errorf("Expected stateful to be false, got %v", app.stateful)
	}
	if app.initialState != 0 {
		t.Errorf("Expected initialState to be 0, got %v", app.initialState)
	}
	if app.finalState != 0 {
		t.Errorf("Expected finalState to be 0, got %v", app.finalState)
	}
}

func TestAppBuilder_UseStates(t *testing.T) {
	builder := NewAppBuilder()
	builder.UseStates(StateRunning, StateExiting)

	app := builder.Build()

	if app.stateful != true {
		t.Errorf("Expected stateful to be true, got %v", app.stateful)
	}
	if app.initialState != StateRunning {
		t.Errorf("Expected initialState to be %v, got %v", StateRunning, app.initialState)
	}
	if app.finalState != StateExiting {
		t.Errorf("Expected finalState to be %v, got %v", StateExiting, app.finalState)
	}
}

func TestAppBuilder_DefaultStages(t *testing.T) {
	app := NewAppBuilder().UseStates(StateRunning, StateExiting).Build()

	names := make([]string, len(app.stages))
	for i, s := range app.stages {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Prelude", "PreUpdate", "Update", "PostUpdate", "PreRender", "Render", "PostRender", "Finale"}, names)

	for _, s := range app.stages {
		require.Contains(t, app.systemsStateless, s.Name)
		require.Contains(t, app.systems[s.Name], StateRunning)
		require.Contains(t, app.systems[s.Name], StateExiting)
	}
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	mockModule := &MockModule{}
	builder.UseModule(mockModule)

	if len(builder.modules) != 1 {
		t.Errorf("Expected modules to contain 1 module, got %v", len(builder.modules))
	}
	assert.False(t, mockModule.installed, "modules install on Build")
}

func TestAppBuilder_Build_WithMultipleModules(t *testing.T) {
	var order []string
	module1 := &MockModule{order: &order, name: "first"}
	module2 := &MockModule{order: &order, name: "second"}

	builder := NewAppBuilder()
	builder.UseModule(module1)
	builder.UseModule(module2)

	builder.Build()

	assert.True(t, module1.installed)
	assert.True(t, module2.installed)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestTestbedModules(t *testing.T) {
	cfg := DefaultConfig()
	modules := TestbedModules(cfg)
	require.Len(t, modules, 8)
	assert.IsType(t, LoggingModule{}, modules[0])
	assert.Equal(t, PlatformWindowModule{Width: 1280, Height: 720, Title: "neon-testbed", VSync: true}, modules[2])
	assert.IsType(t, HudModule{}, modules[len(modules)-1])

	cam := modules[4].(FpsCameraModule)
	assert.Equal(t, float32(45), cam.Fov)
	assert.Equal(t, float32(5), cam.Position.Z())

	cfg.Window = WindowConfig{Width: 0, Height: 600, Title: "", VSync: false}
	assert.Equal(t, PlatformWindowModule{Width: 1280, Height: 600, Title: "neon-testbed"}, TestbedModules(cfg)[2])

	cfg.Assets.ShaderDir = "render/shaders/glsl"
	cfg.Assets.WatchShaders = true
	modules = TestbedModules(cfg)
	require.Len(t, modules, 9)
	assert.Equal(t, ShaderReloadModule{Dir: "render/shaders/glsl"}, modules[8])
}
