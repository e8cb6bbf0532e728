package neon

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_changeState(t *testing.T) {
	app := &App{
		stateful:     true,
		initialState: 1,
		state:        1,
		finalState:   2,
	}

	// Test changing state
	app.changeState(2)
	if app.nextState != State(2) {
		t.Errorf("The nextState should be set correctly.")
	}
	if !app.stateTransitioning {
		t.Errorf("The stateTransitioning flag should be true.")
	}

	// Test executing state change
	app.executeChangeState(2)
	if app.state != State(2) {
		t.Errorf("The app state should change correctly.")
	}
}

func TestApp_addResources(t *testing.T) {
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	// Expect panic when trying to add the same type of resource again
	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")

	got, ok := Resource[MockResource2](app)
	require.True(t, ok)
	assert.Same(t, resource2, got)
	assert.True(t, hasResource[MockResource1](app))
	assert.False(t, hasResource[Time](app))
}

// recorder is a module that logs every system call of a stateful app.
type recorder struct {
	log      []string
	stopAt   int
	stopWith error
}

type frameCounter struct {
	n int
}

func (r *recorder) Install(app *App, cmd *Commands) {
	cmd.AddResources(&frameCounter{})
	note := func(s string) func() {
		return func() { r.log = append(r.log, s) }
	}
	app.UseSystem(System(note("enter running")).InStage(Update).InState(OnEnter(StateRunning)))
	app.UseSystem(System(note("exit running")).InStage(Update).InState(OnExit(StateRunning)))
	app.UseSystem(System(note("enter exiting")).InStage(Update).InState(OnEnter(StateExiting)))
	app.UseSystem(System(note("exit exiting")).InStage(Finale).InState(OnExit(StateExiting)))
	app.UseSystem(System(func(fc *frameCounter, cmd *Commands) {
		fc.n++
		r.log = append(r.log, fmt.Sprintf("frame %d", fc.n))
		if fc.n == r.stopAt {
			cmd.Exit(r.stopWith)
		}
	}).InStage(Update).InState(OnExecute(StateRunning)))
}

func TestApp_RunStateLifecycle(t *testing.T) {
	rec := &recorder{stopAt: 2}
	app := NewAppBuilder().UseStates(StateRunning, StateExiting).UseModule(rec).Build()

	require.NoError(t, app.Run())
	assert.Equal(t, []string{
		"enter running",
		"frame 1",
		"frame 2",
		"exit running",
		"enter exiting",
		"exit exiting",
	}, rec.log)
	assert.Equal(t, uint64(2), app.Frames())
	assert.Equal(t, StateExiting, app.State())
}

func TestApp_RunReturnsFirstExitError(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{stopAt: 1, stopWith: boom}
	app := NewAppBuilder().UseStates(StateRunning, StateExiting).UseModule(rec).Build()
	app.UseSystem(System(func(cmd *Commands) {
		cmd.Exit(errors.New("later"))
	}).InStage(Finale).InState(OnEnter(StateExiting)))

	err := app.Run()
	assert.ErrorIs(t, err, boom)
}

func TestApp_SystemErrorRequestsExit(t *testing.T) {
	boom := errors.New("load failed")
	var executed bool
	app := NewAppBuilder().UseStates(StateRunning, StateExiting).Build()
	app.UseSystem(System(func() error { return boom }).InStage(PreUpdate).InState(OnEnter(StateRunning)))
	app.UseSystem(System(func() { executed = true }).InStage(Update).InState(OnExecute(StateRunning)))

	assert.ErrorIs(t, app.Run(), boom)
	assert.False(t, executed, "no frame runs after a failed enter")
}

func TestApp_StatelessExit(t *testing.T) {
	frames := 0
	app := NewAppBuilder().Build()
	app.UseSystem(System(func(cmd *Commands) {
		frames++
		if frames == 3 {
			cmd.Exit(nil)
		}
	}))

	require.NoError(t, app.Run())
	assert.Equal(t, 3, frames)
}

type failingModule struct{}

func (failingModule) Install(app *App, cmd *Commands) {
	cmd.Exit(errors.New("no display"))
}

func TestApp_InstallErrorSkipsRun(t *testing.T) {
	called := false
	app := NewAppBuilder().UseStates(StateRunning, StateExiting).UseModule(failingModule{}).Build()
	app.UseSystem(System(func() { called = true }).InStage(Update).InState(OnEnter(StateRunning)))

	assert.EqualError(t, app.Run(), "no display")
	assert.False(t, called)
}

func TestApp_callSystemResolvesResources(t *testing.T) {
	app := NewAppBuilder().Build()
	res := NewMockResource1("r")
	app.addResources(res)

	var got *MockResource1
	app.callSystem(func(r *MockResource1, cmd *Commands) {
		got = r
		assert.NotNil(t, cmd)
	})
	assert.Same(t, res, got)

	assert.Panics(t, func() {
		app.callSystem(func(*MockResource2) {})
	})
}

func TestApp_LoggerFallsBackToNop(t *testing.T) {
	var nilApp *App
	assert.NotNil(t, nilApp.Logger())

	app := NewAppBuilder().Build()
	assert.IsType(t, &nopLogger{}, app.Logger())

	logger := NewDefaultLogger("test", false)
	app.addResources(logger)
	assert.Same(t, logger, app.Logger())
}
