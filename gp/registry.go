package gp

import (
	"sort"

	"github.com/gogpu/gpucontext"
)

// Well-known backend names.
const (
	// BackendSoft is the software GP emulator in package gp/soft.
	BackendSoft = "soft"

	// BackendRecord records commands without executing them.
	BackendRecord = "record"
)

// Backend opens command queues over a framebuffer.
type Backend interface {
	// Name returns the registered name of the backend.
	Name() string

	// Open returns a queue that executes against fb.
	Open(fb []byte) (Queue, error)
}

// backends holds registered backends. Emulators win over recorders.
var backends = gpucontext.NewRegistry[Backend](
	gpucontext.WithPriority(BackendSoft, BackendRecord),
)

func init() {
	Register(BackendRecord, func() Backend { return recordBackend{} })
}

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory func() Backend) {
	backends.Register(name, factory)
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	backends.Unregister(name)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	names := backends.Available()
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	return backends.Has(name)
}

// Get returns a backend instance by name, or the highest-priority backend
// when name is empty. It returns ErrBackendNotAvailable if nothing matches.
func Get(name string) (Backend, error) {
	var b Backend
	if name == "" {
		b = backends.Best()
	} else {
		b = backends.Get(name)
	}
	if b == nil {
		return nil, ErrBackendNotAvailable
	}
	return b, nil
}

// Open opens a queue on fb with the named backend; see Get.
func Open(name string, fb []byte) (Queue, error) {
	b, err := Get(name)
	if err != nil {
		return nil, err
	}
	return b.Open(fb)
}

type recordBackend struct{}

func (recordBackend) Name() string { return BackendRecord }

func (recordBackend) Open([]byte) (Queue, error) { return NewRecorder(nil), nil }
