package hal

// HostConfig sizes the host framebuffer.
type HostConfig struct {
	Width  int
	Height int
}

const (
	DefaultWidth  = 350
	DefaultHeight = 500
)

type hostHAL struct {
	fb  *hostFramebuffer
	kbd *hostKeyboard
	ptr *hostPointer
	t   *hostTime
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	return &hostHAL{
		fb:  newHostFramebuffer(cfg.Width, cfg.Height),
		kbd: newHostKeyboard(),
		ptr: newHostPointer(),
		t:   newHostTime(),
	}
}

func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }
