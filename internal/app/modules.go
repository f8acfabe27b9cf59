package app

import (
	"github.com/vk/fmlgen/internal/config"
	"github.com/vk/fmlgen/internal/hcl"
	"github.com/vk/fmlgen/internal/registry"
	"github.com/vk/fmlgen/internal/yamlloader"
	"github.com/vk/fmlgen/modules/kotlin"
	"github.com/vk/fmlgen/modules/swift"
)

// coreModules is the definitive list of all backends that are compiled into
// the fmlgen binary.
var coreModules = []registry.Module{
	&kotlin.Module{},
	&swift.Module{},
}

// DefaultLoader returns the manifest loader compiled into the binary: HCL
// and YAML files.
func DefaultLoader() config.Loader {
	return config.NewLoader(hcl.NewLoader(), yamlloader.NewLoader())
}
