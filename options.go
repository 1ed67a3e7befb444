package libcnb

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/buildpacks/libcnb/exit"
	"github.com/buildpacks/libcnb/log"
	"github.com/buildpacks/libcnb/platform"
)

// Config is the configuration of a phase run.
type Config struct {
	arguments   []string
	environ     []string
	exitHandler exit.Handler
	logger      log.Logger
	workingDir  string
}

// Option is a function for configuring a Config instance.
type Option func(config Config) Config

// WithArguments creates an Option that sets the process arguments, argv[0] included.
func WithArguments(arguments []string) Option {
	return func(config Config) Config {
		config.arguments = arguments
		return config
	}
}

// WithEnvironment creates an Option that sets the process environment as KEY=VALUE pairs.
func WithEnvironment(environ []string) Option {
	return func(config Config) Config {
		config.environ = environ
		return config
	}
}

// WithExitHandler creates an Option that sets the exit handler.
func WithExitHandler(exitHandler exit.Handler) Option {
	return func(config Config) Config {
		config.exitHandler = exitHandler
		return config
	}
}

// WithLogger creates an Option that sets the logger handed to buildpack code.
func WithLogger(logger log.Logger) Option {
	return func(config Config) Config {
		config.logger = logger
		return config
	}
}

// WithWorkingDir creates an Option that sets the application directory.
func WithWorkingDir(dir string) Option {
	return func(config Config) Config {
		config.workingDir = dir
		return config
	}
}

func newConfig(options ...Option) Config {
	config := Config{
		arguments: os.Args,
		environ:   os.Environ(),
	}
	for _, option := range options {
		config = option(config)
	}

	if config.logger == nil {
		logger, err := log.NewDefaultLoggerFromEnv(os.Stdout, config.getenv)
		if err != nil {
			logger.Warnf("Ignoring %s: %s", log.EnvLogLevel, err)
		}
		config.logger = logger
	}
	if config.exitHandler == nil {
		config.exitHandler = exit.NewHandler(log.NewDefaultLogger(os.Stderr))
	}
	return config
}

// getenv returns the last value of key in the configured environment.
func (c Config) getenv(key string) string {
	var value string
	for _, kv := range c.environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k == key {
			value = v
		}
	}
	return value
}

// appDir defaults to the process working directory.
func (c Config) appDir() (string, error) {
	if c.workingDir != "" {
		return filepath.Abs(c.workingDir)
	}
	return os.Getwd()
}

// buildpackDir falls back to the parent of the directory holding the executable, <buildpack>/bin/<phase>.
func (c Config) buildpackDir() (string, error) {
	if dir := c.getenv(platform.VarBuildpackDir); dir != "" {
		return filepath.Abs(dir)
	}
	if len(c.arguments) == 0 {
		return "", os.ErrNotExist
	}
	return filepath.Abs(filepath.Dir(filepath.Dir(c.arguments[0])))
}
