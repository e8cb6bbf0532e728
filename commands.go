package neon

type Commands struct {
	app *App
}

func (cmd *Commands) ChangeState(newState State) *Commands {
	cmd.app.changeState(newState)
	return cmd
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// Exit stops the app after the current frame. A non-nil err is returned
// from App.Run unless an earlier error was already recorded.
func (cmd *Commands) Exit(err error) {
	cmd.app.exit(err)
}

// Exiting reports whether an exit was requested.
func (cmd *Commands) Exiting() bool {
	return cmd.app.exitRequested
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
