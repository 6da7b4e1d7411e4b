package pbr

import "log/slog"

// Releaser is implemented by everything that owns driver resources.
// Release gives up one reference; the last one frees the resources.
type Releaser interface {
	Release()
}

// refCount is the reference counter shared by all resources.
//
// A fresh counter is 0, which means one live owner and no extra holders.
// release reports true only when the counter is 0 at call time; it then
// decrements unconditionally, so the counter reaches -1 after the freeing
// call. Releasing more often than AddRef was called plus one is a caller
// error. It is not prevented, only logged.
type refCount struct {
	refs int
}

// AddRef takes an additional reference.
func (r *refCount) AddRef() {
	r.refs++
}

// Refs returns the number of references held in addition to the owner.
// It is -1 (or lower) once the resource has been freed.
func (r *refCount) Refs() int {
	return r.refs
}

func (r *refCount) release(kind string) bool {
	if r.refs < 0 {
		slog.Warn("release of freed resource", "kind", kind, "refs", r.refs)
	}
	last := r.refs == 0
	r.refs--
	return last
}
