package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidConfig is returned when a build configuration holds an unknown or empty value.
	ErrInvalidConfig = zerr.New("invalid build configuration")

	// ErrUnsupportedFormat is returned when a configuration file uses an unknown encoding.
	ErrUnsupportedFormat = zerr.New("unsupported configuration format")

	// ErrUnsupportedLibraryType is returned when the bundler cannot emit the requested export convention.
	ErrUnsupportedLibraryType = zerr.New("unsupported library type")

	// ErrUnsupportedTarget is returned when the bundler cannot produce output for the requested runtime.
	ErrUnsupportedTarget = zerr.New("unsupported target environment")

	// ErrBundleFailed is returned when the bundler reports one or more errors.
	ErrBundleFailed = zerr.New("bundle failed")

	// ErrBuildExecutionFailed describes a build that did not produce a bundle.
	ErrBuildExecutionFailed = zerr.New("build execution failed")
)

func invalidField(field, value string) error {
	err := zerr.Wrap(ErrInvalidConfig, "field validation failed")
	return zerr.With(zerr.With(err, "field", field), "value", value)
}
