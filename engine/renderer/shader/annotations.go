// Annotations are single-line WGSL comments of the form //@oxy:<type> <args...>. They inject
// the GPU struct sources owned by the camera, light and model packages, generate
// @group/@binding declarations, and record which scene component supplies each binding.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// annotationTypeInclude injects a registered struct source once per module.
	//
	// Syntax: //@oxy:include <struct_type>
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a @group/@binding variable declaration.
	//
	// Syntax: //@oxy:group <group> <binding> <address_space> <var_name> <struct_type | array<struct_type>>
	AnnotationTypeBindingGroup AnnotationType = "group"

	// AnnotationTypeProvider names the scene component that writes a binding. It emits no WGSL.
	//
	// Syntax: //@oxy:provider <group> <binding> <provider_identity>
	AnnotationTypeProvider AnnotationType = "provider"
)

// Annotation is one parsed @oxy: line.
type Annotation struct {
	Type AnnotationType

	// Args depends on Type:
	//   - include:  [0] struct type
	//   - group:    [0] address space, [1] var name, [2] struct type
	//   - provider: [0] provider identity
	Args []AnnotationArg

	// Line is 1-based.
	Line int

	// Group and Binding are nil for include annotations.
	Group   *int
	Binding *int
}

// AnnotationArg is a typed annotation argument.
type AnnotationArg string

// Struct types. Each names a GPU type whose WGSL source is embedded in its owning package.
const (
	AnnotationArgCamera    AnnotationArg = "camera"
	AnnotationArgLighting  AnnotationArg = "lighting"
	AnnotationArgModelData AnnotationArg = "model_data"
	annotationArgVertex    AnnotationArg = "vertex"
)

// Address spaces.
const (
	annotationArgStorageTypeUniform AnnotationArg = "storage_uniform"
	annotationArgStorageTypeRead    AnnotationArg = "storage_read"
)

// AnnotationArgModel is the per-object model provider. Camera and lighting providers reuse
// their struct type names.
const AnnotationArgModel AnnotationArg = "model"

var validStructTypes = []AnnotationArg{
	AnnotationArgCamera,
	AnnotationArgLighting,
	AnnotationArgModelData,
	annotationArgVertex,
}

var validAddressSpaces = []AnnotationArg{
	annotationArgStorageTypeUniform,
	annotationArgStorageTypeRead,
}

// providerStructs maps each provider identity to the struct type its binding must hold.
var providerStructs = map[AnnotationArg]AnnotationArg{
	AnnotationArgCamera:   AnnotationArgCamera,
	AnnotationArgLighting: AnnotationArgLighting,
	AnnotationArgModel:    AnnotationArgModelData,
}

// annotationArity is the argument count after the type keyword.
var annotationArity = map[AnnotationType]struct {
	n    int
	desc string
}{
	annotationTypeInclude:      {1, "exactly one argument (struct type)"},
	AnnotationTypeBindingGroup: {5, "exactly five arguments (group, binding, address space, var name, struct type)"},
	AnnotationTypeProvider:     {3, "exactly three arguments (group, binding, provider identity)"},
}

// structArg strips an array<> wrapper from a group annotation's type argument.
func structArg(arg AnnotationArg) AnnotationArg {
	s := string(arg)
	if inner, ok := strings.CutPrefix(s, "array<"); ok {
		s = strings.TrimSuffix(inner, ">")
	}
	return AnnotationArg(s)
}

// parseAnnotation parses one source line. Lines without the @oxy: prefix yield nil, nil.
//
// Parameters:
//   - line: the raw WGSL source line
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil
//   - error: a "line N:" prefixed error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	_, after, ok := strings.Cut(strings.TrimSpace(line), annotationPrefix)
	if !ok {
		return nil, nil
	}
	fields := strings.Fields(after)
	if len(fields) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	kind := AnnotationType(fields[0])
	arity, known := annotationArity[kind]
	if !known {
		return nil, fmt.Errorf("line %d: unknown @oxy annotation type %q", lineNum, fields[0])
	}
	args := fields[1:]
	if len(args) != arity.n {
		return nil, fmt.Errorf("line %d: @oxy %s annotation requires %s", lineNum, kind, arity.desc)
	}

	a := &Annotation{Type: kind, Line: lineNum}
	if kind == annotationTypeInclude {
		if !slices.Contains(validStructTypes, AnnotationArg(args[0])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @oxy include annotation", lineNum, args[0])
		}
		a.Args = []AnnotationArg{AnnotationArg(args[0])}
		return a, nil
	}

	group, err := parseIndex("group", args[0], lineNum)
	if err != nil {
		return nil, err
	}
	binding, err := parseIndex("binding", args[1], lineNum)
	if err != nil {
		return nil, err
	}
	a.Group, a.Binding = &group, &binding

	switch kind {
	case AnnotationTypeBindingGroup:
		space, varName, typeArg := AnnotationArg(args[2]), AnnotationArg(args[3]), AnnotationArg(args[4])
		if !slices.Contains(validAddressSpaces, space) {
			return nil, fmt.Errorf("line %d: unknown address space %q in @oxy group annotation", lineNum, space)
		}
		if !slices.Contains(validStructTypes, structArg(typeArg)) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @oxy group annotation", lineNum, typeArg)
		}
		a.Args = []AnnotationArg{space, varName, typeArg}
	case AnnotationTypeProvider:
		identity := AnnotationArg(args[2])
		if _, ok := providerStructs[identity]; !ok {
			return nil, fmt.Errorf("line %d: unknown provider identity %q in @oxy provider annotation", lineNum, identity)
		}
		a.Args = []AnnotationArg{identity}
	}
	return a, nil
}

func parseIndex(what, arg string, lineNum int) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("line %d: invalid %s number %q", lineNum, what, arg)
	}
	return n, nil
}
