// pre_processor.go implements the Oxy WGSL shader pre-processor. It scans shader
// source code for @oxy: annotations, replaces them with generated WGSL declarations
// or injected struct source, and collects a declarations list describing which
// engine component feeds each binding.
//
// The pre-processor maintains two registries:
//   - structRegistry: maps AnnotationArg keys to embedded WGSL struct sources and their
//     resolved type names. Used by @oxy:include (to inject the struct source) and
//     @oxy:group (to resolve the WGSL type name in the generated declaration).
//   - addressSpaceRegistry: maps address space argument keys to WGSL var<> syntax strings.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-desk/engine/camera"
	"github.com/Carmen-Shannon/oxy-desk/engine/light"
	"github.com/Carmen-Shannon/oxy-desk/engine/model"
)

// registryEntry pairs a WGSL struct source string (embedded from a .wgsl asset file)
// with the resolved WGSL type name used in generated @group/@binding declarations.
type registryEntry struct {
	// Source is the raw WGSL struct definition text injected by @oxy:include.
	Source string

	// Type is the WGSL type name emitted in @oxy:group declarations (e.g. "CameraUniform").
	Type string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]string

	// declarations accumulates group and provider annotations during a Process call.
	declarations []Annotation
}

// PreProcessor processes raw WGSL shader source code containing @oxy: annotations,
// replacing them with generated declarations or injected struct sources while collecting
// a declarations list for downstream resource wiring.
type PreProcessor interface {
	// Process takes raw WGSL shader source code and replaces @oxy: annotations with
	// their corresponding WGSL output. The declarations list is reset at the start
	// of each call.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code containing annotations to be processed
	//
	// Returns:
	//   - string: the processed WGSL shader source code with annotations replaced
	//   - error: an error if any annotation is malformed or references an unknown type
	Process(source string) (string, error)

	// Declarations returns the group and provider annotations collected during the
	// most recent call to Process, in source order.
	//
	// Returns:
	//   - []Annotation: the declarations collected during the last Process call
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a new PreProcessor with the camera, lighting, model and
// vertex struct sources registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgCamera:    {Source: camera.GPUCameraUniformSource, Type: "CameraUniform"},
			AnnotationArgLighting:  {Source: light.GPULightingUniformSource, Type: "LightingUniform"},
			AnnotationArgModelData: {Source: model.GPUModelDataSource, Type: "ModelData"},
			annotationArgVertex:    {Source: model.GPUVertexSource, Type: "VertexInput"},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform: "var<uniform>",
			annotationArgStorageTypeRead:    "var<storage, read>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	included := make(map[AnnotationArg]bool)

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			// a struct may only be declared once per module
			if included[a.Args[0]] {
				continue
			}
			entry, ok := p.structRegistry[a.Args[0]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @oxy:include argument %q", i+1, a.Args[0])
			}
			included[a.Args[0]] = true
			out = append(out, strings.TrimRight(entry.Source, "\n"))
		case AnnotationTypeBindingGroup:
			addrSpace := p.addressSpaceRegistry[a.Args[0]]
			varName := string(a.Args[1])
			var wgslType string
			if inner, ok := strings.CutPrefix(string(a.Args[2]), "array<"); ok {
				inner = strings.TrimSuffix(inner, ">")
				wgslType = fmt.Sprintf("array<%s>", p.structRegistry[AnnotationArg(inner)].Type)
			} else {
				wgslType = p.structRegistry[a.Args[2]].Type
			}

			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;", *a.Group, *a.Binding, addrSpace, varName, wgslType))
			p.declarations = append(p.declarations, *a)
		case AnnotationTypeProvider:
			p.declarations = append(p.declarations, *a)
		default:
			return "", fmt.Errorf("line %d: unknown annotation type %q", i+1, a.Type)
		}
	}
	if err := p.checkProviders(); err != nil {
		return "", err
	}
	return strings.Join(out, "\n"), nil
}

// checkProviders verifies every provider annotation names a binding declared by a group
// annotation holding the struct type that provider writes.
func (p *preProcessor) checkProviders() error {
	for _, prov := range p.declarations {
		if prov.Type != AnnotationTypeProvider {
			continue
		}
		var group *Annotation
		for i := range p.declarations {
			d := &p.declarations[i]
			if d.Type == AnnotationTypeBindingGroup && *d.Group == *prov.Group && *d.Binding == *prov.Binding {
				group = d
				break
			}
		}
		if group == nil {
			return fmt.Errorf("line %d: @oxy provider %s at group %d binding %d has no @oxy:group declaration",
				prov.Line, prov.Args[0], *prov.Group, *prov.Binding)
		}
		if want := providerStructs[prov.Args[0]]; structArg(group.Args[2]) != want {
			return fmt.Errorf("line %d: @oxy provider %s needs a %s binding, group %d binding %d holds %s",
				prov.Line, prov.Args[0], want, *prov.Group, *prov.Binding, group.Args[2])
		}
	}
	return nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
