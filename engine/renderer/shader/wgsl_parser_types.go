package shader

// wgslLayout is the byte size and alignment of a WGSL host-shareable type.
type wgslLayout struct {
	size  uint64
	align uint64
}

// wgslField is one member of a WGSL struct.
type wgslField struct {
	name     string
	typeName string
	// location is the @location index, or -1.
	location int
	builtin  bool
}

// wgslStruct is a parsed struct declaration.
type wgslStruct struct {
	name   string
	fields []wgslField
}

// wgslBinding is a module-scope resource declared with @group and @binding.
type wgslBinding struct {
	group        int
	binding      int
	addressSpace string
	name         string
	typeName     string
}

// wgslParam is one parameter of an entry point function.
type wgslParam struct {
	name     string
	typeName string
	builtin  bool
}

// wgslEntry is an entry point function and its parameters.
type wgslEntry struct {
	name   string
	params []wgslParam
}
