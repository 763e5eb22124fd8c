package shader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/gogpu/naga"
)

// SPIRVMagic is the first word of every SPIR-V module.
const SPIRVMagic = 0x07230203

// CompileOption adjusts the naga compile options used by CompileSPIRV.
type CompileOption func(*naga.CompileOptions)

// WithDebugInfo toggles emission of SPIR-V debug instructions (names and lines).
//
// Parameters:
//   - debug: true to emit debug info
//
// Returns:
//   - CompileOption: the option
func WithDebugInfo(debug bool) CompileOption {
	return func(o *naga.CompileOptions) {
		o.Debug = debug
	}
}

// CompileSPIRV parses, validates and compiles pre-processed WGSL source to SPIR-V.
//
// Parameters:
//   - source: WGSL source without @oxy: annotations
//   - opts: optional compile adjustments
//
// Returns:
//   - []byte: the SPIR-V module, little-endian words
//   - error: if compilation fails
func CompileSPIRV(source string, opts ...CompileOption) ([]byte, error) {
	options := naga.DefaultOptions()
	options.Validate = true
	for _, opt := range opts {
		opt(&options)
	}
	spv, err := naga.CompileWithOptions(source, options)
	if err != nil {
		return nil, fmt.Errorf("failed to compile WGSL to SPIR-V: %w", err)
	}
	common.Logger().Debug("shader: compiled SPIR-V", "bytes", len(spv))
	return spv, nil
}
