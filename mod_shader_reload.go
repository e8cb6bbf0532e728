package neon

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/neonlabs/neon/render/scene"
)

// ShaderReloadModule rebuilds shader programs when their source files in
// Dir change. The watcher runs on its own goroutine; programs are rebuilt
// on the main thread at the start of the next frame.
type ShaderReloadModule struct {
	Dir string
}

// ShaderWatcher forwards changed shader file names from fsnotify.
type ShaderWatcher struct {
	dir     string
	watcher *fsnotify.Watcher
	changed chan string
	errs    chan error
	done    sync.WaitGroup
}

func (m ShaderReloadModule) Install(app *App, cmd *Commands) {
	if m.Dir == "" {
		return
	}
	sw, err := NewShaderWatcher(m.Dir)
	if err != nil {
		// reload is a convenience; the app runs without it
		app.Logger().Warnf("shader reload disabled: %v", err)
		return
	}
	cmd.AddResources(sw)
	app.Logger().Infof("watching %s for shader changes", m.Dir)

	app.UseSystem(
		System(shaderReloadSystem).
			InStage(PreUpdate).
			InState(OnExecute(StateRunning)),
	)
	app.UseSystem(
		System(shaderWatcherCloseSystem).
			InStage(PostRender).
			InState(OnEnter(StateExiting)),
	)
}

func NewShaderWatcher(dir string) (*ShaderWatcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	sw := &ShaderWatcher{
		dir:     dir,
		watcher: watcher,
		changed: make(chan string, 64),
		errs:    make(chan error, 8),
	}
	sw.done.Add(1)
	go sw.run()
	return sw, nil
}

func (sw *ShaderWatcher) run() {
	defer sw.done.Done()
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			// editors often save by writing a new file and renaming it over the old one
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				select {
				case sw.changed <- filepath.Base(event.Name):
				default:
				}
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			select {
			case sw.errs <- err:
			default:
			}
		}
	}
}

// Changed drains the pending change notifications without blocking and
// returns each file name once, sorted.
func (sw *ShaderWatcher) Changed() []string {
	seen := map[string]bool{}
	for {
		select {
		case name := <-sw.changed:
			seen[name] = true
		default:
			names := make([]string, 0, len(seen))
			for name := range seen {
				names = append(names, name)
			}
			sort.Strings(names)
			return names
		}
	}
}

// Errors drains watcher errors without blocking.
func (sw *ShaderWatcher) Errors() []error {
	var errs []error
	for {
		select {
		case err := <-sw.errs:
			errs = append(errs, err)
		default:
			return errs
		}
	}
}

// Close stops the watcher goroutine and waits for it to exit.
func (sw *ShaderWatcher) Close() error {
	err := sw.watcher.Close()
	sw.done.Wait()
	return err
}

func shaderReloadSystem(sw *ShaderWatcher, programs *scene.Programs, tb *Testbed, cmd *Commands) {
	log := cmd.Logger()
	for _, err := range sw.Errors() {
		log.Warnf("shader watcher: %v", err)
	}
	for _, name := range sw.Changed() {
		reloaded, err := programs.Reload(tb.ShaderFS, name)
		if err != nil {
			log.Errorf("%v", err)
		}
		if len(reloaded) > 0 {
			log.Infof("%s changed, reloaded %v", name, reloaded)
		}
	}
}

func shaderWatcherCloseSystem(sw *ShaderWatcher, cmd *Commands) {
	if err := sw.Close(); err != nil {
		cmd.Logger().Warnf("close shader watcher: %v", err)
	}
}
