package domain

import "path/filepath"

// Mode is the optimization profile requested from the bundler.
type Mode string

const (
	// ModeDevelopment keeps the bundle readable and skips minification.
	ModeDevelopment Mode = "development"
	// ModeProduction minifies the bundle and enables tree shaking.
	ModeProduction Mode = "production"
)

// Target is the runtime the bundle must be compatible with.
type Target string

const (
	// TargetNode produces a bundle for a Node.js process.
	TargetNode Target = "node"
	// TargetWeb produces a bundle for a browser page.
	TargetWeb Target = "web"
	// TargetWebWorker produces a bundle for a browser worker.
	TargetWebWorker Target = "webworker"
)

// LibraryType is the export convention used by the generated bundle.
type LibraryType string

const (
	// LibraryCommonJSModule exports the entry through module.exports.
	LibraryCommonJSModule LibraryType = "commonjs-module"
	// LibraryCommonJS exports the entry through the exports object.
	LibraryCommonJS LibraryType = "commonjs"
	// LibraryModule emits an ECMAScript module.
	LibraryModule LibraryType = "module"
	// LibraryUMD emits a universal module definition wrapper.
	LibraryUMD LibraryType = "umd"
)

// Library describes how the bundle exposes its exports.
type Library struct {
	Type LibraryType
}

// Output describes where and how the bundle is written.
type Output struct {
	Filename string
	Path     string
	Library  Library
}

// NodeEmulation toggles stubbing of Node.js globals in non-Node targets.
// The zero value leaves every global untouched.
type NodeEmulation struct {
	Global   bool
	Filename bool
	Dirname  bool
}

// Stats controls diagnostics verbosity during a build.
type Stats struct {
	ErrorDetails bool
}

// BuildConfig is the immutable description of a single bundle build.
// It is passed by value; holders never share mutable state.
type BuildConfig struct {
	Mode   Mode
	Entry  string
	Target Target
	Output Output
	Node   NodeEmulation
	Stats  Stats
}

// OutputFile returns the absolute path of the bundle file.
func (c BuildConfig) OutputFile() string {
	return filepath.Join(c.Output.Path, c.Output.Filename)
}

// Validate checks that every enumerated field holds a known value.
func (c BuildConfig) Validate() error {
	switch c.Mode {
	case ModeDevelopment, ModeProduction:
	default:
		return invalidField("mode", string(c.Mode))
	}

	switch c.Target {
	case TargetNode, TargetWeb, TargetWebWorker:
	default:
		return invalidField("target", string(c.Target))
	}

	switch c.Output.Library.Type {
	case LibraryCommonJSModule, LibraryCommonJS, LibraryModule, LibraryUMD:
	default:
		return invalidField("output.library.type", string(c.Output.Library.Type))
	}

	if c.Entry == "" {
		return invalidField("entry", c.Entry)
	}
	if c.Output.Filename == "" {
		return invalidField("output.filename", c.Output.Filename)
	}

	return nil
}
