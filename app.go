package neon

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

type App struct {
	stateful           bool
	stateTransitioning bool
	initialState       State
	finalState         State
	nextState          State
	state              State
	stages             []Stage
	systems            map[string]map[State]map[statePhase][]systemFn
	systemsStateless   map[string][]systemFn
	resources          map[reflect.Type]any

	exitRequested bool
	exitErr       error
	frames        uint64
}

var defaultStages = []Stage{Prelude, PreUpdate, Update, PostUpdate, PreRender, Render, PostRender, Finale}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// Run drives the frame loop until a system requests exit. In stateful mode
// the exit request moves the app into its final state, whose enter and
// exit systems run before Run returns. The first error passed to Exit is
// returned.
func (app *App) Run() error {
	if app.exitRequested {
		// a module failed during install
		return app.exitErr
	}

	if app.stateful {
		app.Logger().Debugf("running in stateful mode")

		app.state = app.initialState
		app.callSystems(app.state, enter)
	} else {
		app.Logger().Debugf("running in stateless mode")
	}

	for {
		if app.stateful {
			if app.stateTransitioning {
				app.stateTransitioning = false
				app.executeChangeState(app.nextState)
			}

			if app.state == app.finalState {
				app.callSystems(app.state, exit)
				break
			}
		} else if app.exitRequested {
			break
		}

		app.callSystems(app.state, execute)
		app.frames++
	}
	return app.exitErr
}

// Frames is the number of completed frames.
func (app *App) Frames() uint64 { return app.frames }

// State is the current app state.
func (app *App) State() State { return app.state }

func (app *App) callSystems(state State, phase statePhase) {
	for _, stage := range app.stages {
		// On execute, call stateless/always run systems first
		if execute == phase {
			for _, system := range app.systemsStateless[stage.Name] {
				app.callSystem(system)
			}
		}

		if app.stateful {
			if systemsInStage, ok := app.systems[stage.Name]; ok {
				if systemsInState, ok := systemsInStage[state]; ok {
					for _, system := range systemsInState[phase] {
						app.callSystem(system)
					}
				}
			}
		}
	}
}

func (app *App) changeState(newState State) {
	app.nextState = newState
	app.stateTransitioning = true
}

func (app *App) executeChangeState(newState State) {
	app.callSystems(app.state, exit)
	app.state = newState
	app.callSystems(app.state, enter)
}

// exit records err if it is the first one and schedules the final state.
func (app *App) exit(err error) {
	if err != nil && app.exitErr == nil {
		app.exitErr = err
	}
	if app.exitRequested {
		return
	}
	app.exitRequested = true
	if app.stateful && app.state != app.finalState {
		app.changeState(app.finalState)
	}
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// hasResource reports whether a resource of type T is installed.
func hasResource[T any](app *App) bool {
	_, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	return ok
}

// Resource returns the installed resource of type T.
func Resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	typed, ok := r.(*T)
	return typed, ok
}

var (
	typeOfCommands = reflect.TypeOf(Commands{})
	typeOfError    = reflect.TypeOf((*error)(nil)).Elem()
)

// callSystem resolves the system's pointer parameters from the resources
// and calls it. A system may return a single error, which requests exit.
func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		if argType.Kind() != reflect.Pointer {
			panic(app.unresolved(systemValue, systemType, argType))
		}
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			resourceVal := reflect.ValueOf(resource)
			typedResourceVal := reflect.NewAt(underlyingType, resourceVal.UnsafePointer())

			args[i] = typedResourceVal
		} else {
			panic(app.unresolved(systemValue, systemType, argType))
		}
	}

	out := systemValue.Call(args)
	if len(out) == 1 && systemType.Out(0) == typeOfError && !out[0].IsNil() {
		err := out[0].Interface().(error)
		app.Logger().Errorf("%s: %v", systemName(systemValue), err)
		app.exit(err)
	}
}

func (app *App) unresolved(systemValue reflect.Value, systemType, argType reflect.Type) string {
	return fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
		systemName(systemValue),
		fmt.Sprint(systemType),
		fmt.Sprint(argType),
	)
}

func systemName(systemValue reflect.Value) string {
	return runtime.FuncForPC(systemValue.Pointer()).Name()
}
