package pushy

// Tool context names. The push/pull tool remembers the context it replaced;
// ScaleContexts in dragger.Options refers to these names.
const (
	ContextSelect   = "select"
	ContextMove     = "move"
	ContextRotate   = "rotate"
	ContextScale    = "scale"
	ContextPushPull = "pushpull"
)

// ToolContext is the active manipulation tool.
type ToolContext struct {
	Current string
}
