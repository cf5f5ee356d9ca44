package chart

import "github.com/google/uuid"

// Instance is one constructed chart on a canvas. Once destroyed it must not
// be drawn again; a canvas shows at most one live instance.
type Instance struct {
	id        string
	cfg       Config
	destroyed bool
}

// NewInstance constructs a chart from cfg.
func NewInstance(cfg Config) *Instance {
	return &Instance{id: uuid.NewString(), cfg: cfg}
}

// ID identifies the instance; the page uses it to tell a rebuilt chart from an updated one.
func (i *Instance) ID() string { return i.id }

// Config returns the configuration the instance was built from.
func (i *Instance) Config() Config { return i.cfg }

// Destroy releases the instance. Calling it twice is harmless.
func (i *Instance) Destroy() { i.destroyed = true }

// Destroyed reports whether Destroy was called.
func (i *Instance) Destroyed() bool { return i.destroyed }
