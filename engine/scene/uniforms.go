package scene

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/light"
	"github.com/Carmen-Shannon/oxy-desk/engine/model"
	"github.com/Carmen-Shannon/oxy-desk/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-desk/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-desk/engine/shading"
)

// staticObjectKey stages the identity model shared by the desk and the floor. Object IDs start at 1.
const staticObjectKey uint64 = 0

// uniformStage holds the providers staging one shader's uniforms.
type uniformStage struct {
	frame   map[int]bind_group_provider.BindGroupProvider
	objects map[uint64]bind_group_provider.BindGroupProvider
}

func (st *uniformStage) release() {
	for _, p := range st.frame {
		p.Release()
	}
	for _, p := range st.objects {
		p.Release()
	}
}

// frameProvider returns the provider for a per-frame bind group, creating it on first use.
func (st *uniformStage) frameProvider(sh shader.Shader, group int) bind_group_provider.BindGroupProvider {
	p, ok := st.frame[group]
	if !ok {
		p = bind_group_provider.NewBindGroupProvider(
			bind_group_provider.WithLabel(fmt.Sprintf("%s group %d", sh.Key(), group)),
			bind_group_provider.WithGroup(group),
			bind_group_provider.WithLayout(sh.BindGroupLayoutDescriptor(group)),
		)
		st.frame[group] = p
	}
	return p
}

// objectProvider returns the per-object provider for key, creating it on first use.
func (st *uniformStage) objectProvider(sh shader.Shader, group int, key uint64) bind_group_provider.BindGroupProvider {
	p, ok := st.objects[key]
	if !ok {
		p = bind_group_provider.NewBindGroupProvider(
			bind_group_provider.WithLabel(fmt.Sprintf("%s object %d", sh.Key(), key)),
			bind_group_provider.WithGroup(group),
			bind_group_provider.WithLayout(sh.BindGroupLayoutDescriptor(group)),
		)
		st.objects[key] = p
	}
	return p
}

func (s *scene) StageUniforms(sh shader.Shader) ([]bind_group_provider.BufferWrite, error) {
	if sh == nil {
		return nil, fmt.Errorf("scene %s: nil shader", s.Name())
	}

	camUniform := s.cam.GPUUniform()
	camData := camUniform.Marshal()
	lightUniform := light.ToGPULightingUniform(s.Lighting())
	lightData := lightUniform.Marshal()

	modelData := map[uint64][]byte{staticObjectKey: marshalModel(shading.IdentityModel())}
	for _, obj := range s.Objects() {
		if obj.Enabled() {
			modelData[obj.ID()] = marshalModel(obj.ModelState())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stages[sh.Key()]
	if !ok {
		st = &uniformStage{
			frame:   make(map[int]bind_group_provider.BindGroupProvider),
			objects: make(map[uint64]bind_group_provider.BindGroupProvider),
		}
		s.stages[sh.Key()] = st
	}

	for _, decl := range sh.Declarations() {
		if decl.Type != shader.AnnotationTypeProvider || decl.Group == nil || decl.Binding == nil || len(decl.Args) == 0 {
			continue
		}
		group, binding := *decl.Group, *decl.Binding

		switch decl.Args[0] {
		case shader.AnnotationArgCamera:
			if _, err := st.frameProvider(sh, group).Write(binding, 0, camData); err != nil {
				return nil, fmt.Errorf("failed to stage camera uniform: %w", err)
			}
		case shader.AnnotationArgLighting:
			if _, err := st.frameProvider(sh, group).Write(binding, 0, lightData); err != nil {
				return nil, fmt.Errorf("failed to stage lighting uniform: %w", err)
			}
		case shader.AnnotationArgModel:
			for key, data := range modelData {
				if _, err := st.objectProvider(sh, group, key).Write(binding, 0, data); err != nil {
					return nil, fmt.Errorf("failed to stage model uniform for object %d: %w", key, err)
				}
			}
		default:
			return nil, fmt.Errorf("shader %s: unknown provider %q", sh.Key(), decl.Args[0])
		}
	}

	for key, p := range st.objects {
		if _, ok := modelData[key]; !ok {
			p.Release()
			delete(st.objects, key)
		}
	}

	var writes []bind_group_provider.BufferWrite
	for _, group := range slices.Sorted(maps.Keys(st.frame)) {
		writes = append(writes, st.frame[group].Flush()...)
	}
	for _, key := range slices.Sorted(maps.Keys(st.objects)) {
		writes = append(writes, st.objects[key].Flush()...)
	}
	common.Logger().Debug("scene: staged uniforms", "shader", sh.Key(), "writes", len(writes))
	return writes, nil
}

// ObjectBindGroup returns the provider staging an object's model uniform for a shader.
// The desk and floor share the provider at key 0.
func (s *scene) ObjectBindGroup(shaderKey string, id uint64) bind_group_provider.BindGroupProvider {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stages[shaderKey]
	if !ok {
		return nil
	}
	return st.objects[id]
}

func marshalModel(state shading.ModelState) []byte {
	data := model.ToGPUModelData(state)
	return data.Marshal()
}
