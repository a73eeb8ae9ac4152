package pushy

// Viewport tracks redraw requests. A renderer compares Revision against the
// last one it drew.
type Viewport struct {
	Revision uint64
	Dirty    bool
}

func (v *Viewport) Refresh() {
	v.Revision++
	v.Dirty = true
}

// viewportSystem acknowledges pending refreshes once the frame is over.
func viewportSystem(cmd *Commands, vp *Viewport) {
	if !vp.Dirty {
		return
	}
	cmd.App().Logger().Debugf("viewport refresh #%d", vp.Revision)
	vp.Dirty = false
}
