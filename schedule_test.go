package neon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_StageOrder(t *testing.T) {
	var order []string
	app := NewAppBuilder().Build()
	for _, stage := range []Stage{Finale, Prelude, Render, Update} {
		name := stage.Name
		app.UseSystem(System(func() { order = append(order, name) }).InStage(stage))
	}

	app.callSystems(app.state, execute)
	assert.Equal(t, []string{"Prelude", "Update", "Render", "Finale"}, order)
}

func TestSchedule_UseStage(t *testing.T) {
	shadows := Stage{Name: "Shadows", UpdateType: DynamicUpdate}
	app := NewAppBuilder().UseStates(StateRunning, StateExiting).Build()
	app.UseStage(shadows, BeforeStage(Render))

	var order []string
	app.UseSystem(System(func() { order = append(order, "render") }).InStage(Render))
	app.UseSystem(System(func() { order = append(order, "shadows") }).InStage(shadows).InState(OnExecute(StateRunning)))
	app.callSystems(StateRunning, execute)
	assert.Equal(t, []string{"shadows", "render"}, order)

	assert.PanicsWithValue(t, "Stage Missing not found", func() {
		app.UseStage(Stage{Name: "Late"}, AfterStage(Stage{Name: "Missing"}))
	})
}

func TestSchedule_PhasesOnlyRunInTheirState(t *testing.T) {
	app := NewAppBuilder().UseStates(StateRunning, StateExiting).Build()
	var calls []string
	app.UseSystem(System(func() { calls = append(calls, "running") }).InState(OnExecute(StateRunning)))
	app.UseSystem(System(func() { calls = append(calls, "exiting") }).InState(OnExecute(StateExiting)))
	app.UseSystem(System(func() { calls = append(calls, "always") }).InState(Always()))

	app.callSystems(StateExiting, execute)
	assert.Equal(t, []string{"always", "exiting"}, calls)

	calls = nil
	app.callSystems(StateRunning, enter)
	assert.Empty(t, calls, "always systems only run on execute")
}

func TestSchedule_StatefulSystemInStatelessApp(t *testing.T) {
	app := NewAppBuilder().Build()
	require.PanicsWithValue(t, "Trying to use a stateful system in a stateless app.", func() {
		app.UseSystem(System(func() {}).InState(OnEnter(StateRunning)))
	})
}
