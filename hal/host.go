package hal

type hostHAL struct {
	x   *x11Display
	win Window
	snd Sound
}

// New returns the X11 host implementation.
func New() HAL {
	return &hostHAL{
		x:   &x11Display{},
		win: newHostWindow(),
		snd: newHostSound(),
	}
}

func (h *hostHAL) Screen() Screen   { return h.x }
func (h *hostHAL) Window() Window   { return h.win }
func (h *hostHAL) Root() RootWindow { return h.x }
func (h *hostHAL) Sound() Sound     { return h.snd }
func (h *hostHAL) Close() error     { return h.x.Close() }
