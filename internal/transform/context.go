package transform

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/ironsheep/image-transform/internal/primitive"
)

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger failures are reported to. The default writes to
// stderr.
func WithLogger(l *log.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// WithBackground sets the output configuration new images start with.
func WithBackground(bg Background) Option {
	return func(c *Context) { c.background = bg }
}

// WithPadAlpha sets the Fill padding alpha policy.
func WithPadAlpha(p PadAlpha) Option {
	return func(c *Context) { c.padAlpha = p }
}

// WithDebug enables per-operation debug logging.
func WithDebug(debug bool) Option {
	return func(c *Context) { c.debug = debug }
}

// Context is the process-wide library state. It brackets every other call:
// images can only be decoded through a live Context, and the Context can
// only be shut down once every image has been closed.
//
// A Context is safe for concurrent use. Images are not.
type Context struct {
	name       string
	backend    primitive.Backend
	logger     *log.Logger
	background Background
	padAlpha   PadAlpha
	debug      bool
	formats    []string

	mu      sync.Mutex
	open    int
	stopped bool
}

// Init starts backend and returns the Context owning it. concurrency bounds
// the backend's worker pool; zero keeps the library default.
func Init(name string, concurrency int, backend primitive.Backend, opts ...Option) (*Context, error) {
	const op = "init"

	c := &Context{
		name:       name,
		backend:    backend,
		logger:     log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lshortfile),
		background: DefaultBackground(),
		padAlpha:   PadAlphaAlways,
	}
	for _, opt := range opts {
		opt(c)
	}

	if backend == nil {
		return nil, c.fail(op, ErrConfig, fmt.Errorf("no backend: %w", ErrInvalidArgument))
	}
	if concurrency < 0 {
		return nil, c.fail(op, ErrConfig, fmt.Errorf("concurrency %d: %w", concurrency, ErrInvalidArgument))
	}
	if err := backend.Startup(name, concurrency); err != nil {
		return nil, c.fail(op, ErrState, err)
	}

	c.formats = backend.Formats()
	c.debugf("%s: started %s backend (concurrency %d, %d formats)", name, backend.Name(), concurrency, len(c.formats))
	return c, nil
}

// Shutdown stops the backend. It fails with ErrBusy while images decoded by
// this Context are still open. Calling it again is a no-op.
func (c *Context) Shutdown() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return nil
	}
	if c.open > 0 {
		return c.fail("shutdown", ErrState, fmt.Errorf("%d open: %w", c.open, ErrBusy))
	}
	c.backend.Shutdown()
	c.stopped = true
	c.debugf("%s: shut down", c.name)
	return nil
}

// Formats lists the extensions ToBuffer accepts, as reported by the backend
// at Init.
func (c *Context) Formats() []string {
	out := make([]string, len(c.formats))
	copy(out, c.formats)
	return out
}

// Backend returns the primitives backend.
func (c *Context) Backend() primitive.Backend { return c.backend }

// Logger returns the diagnostics logger.
func (c *Context) Logger() *log.Logger { return c.logger }

// OpenImages reports how many images are still open.
func (c *Context) OpenImages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Decode parses an encoded buffer into a new Image.
func (c *Context) Decode(buf []byte) (*Image, error) {
	const op = "decode"

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return nil, c.fail(op, ErrState, ErrNotInitialized)
	}
	c.open++
	c.mu.Unlock()

	if len(buf) == 0 {
		c.release()
		return nil, c.fail(op, ErrDecode, fmt.Errorf("empty buffer: %w", ErrInvalidArgument))
	}

	decoded, err := c.backend.Decode(buf)
	if err != nil {
		c.release()
		return nil, c.fail(op, ErrDecode, err)
	}

	c.debugf("decoded %dx%d %s image with %d bands", decoded.Width(), decoded.Height(), decoded.Interpretation(), decoded.Bands())
	return &Image{ctx: c, img: decoded, bg: c.background}, nil
}

func (c *Context) release() {
	c.mu.Lock()
	c.open--
	c.mu.Unlock()
}

func (c *Context) fail(op string, kind, err error) *Error {
	e := &Error{Op: op, Kind: kind, Err: err}
	if c.logger != nil {
		c.logger.Printf("ERROR: %v", e)
	}
	return e
}

func (c *Context) debugf(format string, args ...interface{}) {
	if c.debug && c.logger != nil {
		c.logger.Printf("DEBUG: "+format, args...)
	}
}
