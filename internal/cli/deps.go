package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// Services is built on first use by EnsureServices.
	Services *service.Services
	Config   config.Config
}

// DefaultDeps creates a new Deps with default values. Services are not
// created until EnsureServices is called.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
		Exit:   os.Exit,
		Config: config.DefaultConfig(),
	}
}

// NewDeps creates a new Deps with the given services
func NewDeps(services *service.Services, cfg config.Config) *Deps {
	d := DefaultDeps()
	d.Services = services
	d.Config = cfg
	return d
}

// EnsureServices creates the services from the user config directory if
// they have not been set. A config file that cannot be used is reported
// as a warning and the defaults are used.
func (d *Deps) EnsureServices() error {
	if d.Services != nil {
		return nil
	}

	services, err := service.NewServices()
	if err != nil {
		return err
	}
	if services.ConfigWarning != nil {
		_, _ = fmt.Fprintf(d.Stderr, "Warning: %v\n", services.ConfigWarning)
	}

	d.Services = services
	d.Config = services.Config.Get()
	return nil
}

// Global deps instance for CLI
var deps = DefaultDeps()

// SetDeps sets the global deps (for testing)
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets to default deps
func ResetDeps() {
	deps = DefaultDeps()
}

// GetDeps returns the current deps
func GetDeps() *Deps {
	return deps
}
