package pushy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToolTitleSystem(t *testing.T) {
	const (
		running State = iota
		done
	)
	app := NewAppBuilder().UseStates(running, done).Build()
	ws := &WindowState{windowTitle: "pushy"}
	tools := &ToolContext{Current: ContextSelect}
	app.addResources(ws, tools)
	app.UseSystem(System(ToolTitleSystem).InStage(PostUpdate).InState(OnExecute(running)))

	assert.Equal(t, "pushy", ws.Title())

	app.Step()
	assert.Equal(t, "pushy [select]", ws.Title())

	tools.Current = ContextPushPull
	app.Step()
	assert.Equal(t, "pushy [pushpull]", ws.Title())
}
