package shader

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// attributeRegex matches @name or @name(args).
	attributeRegex = regexp.MustCompile(`@(\w+)(?:\s*\(([^)]*)\))?`)

	// bindingDeclRegex captures group, binding, optional address space, variable name and type
	// from declarations like: @group(0) @binding(0) var<uniform> camera: CameraUniform;
	bindingDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)

	entryStageRegex = regexp.MustCompile(`@(vertex|fragment)\s+fn\s+(\w+)\s*\(`)
)

// wgslModule is the layout-relevant subset of a WGSL module: struct declarations and their
// computed layouts, resource bindings and stage entry points. Function bodies are ignored.
type wgslModule struct {
	structs  []wgslStruct
	layouts  map[string]wgslLayout
	bindings []wgslBinding
	entries  map[ShaderType]wgslEntry
}

// parseWGSL scans comment-stripped WGSL source once and records everything the shader needs
// to build wgpu layout descriptors.
//
// Parameters:
//   - source: pre-processed WGSL source
//
// Returns:
//   - *wgslModule: the parsed module
func parseWGSL(source string) *wgslModule {
	cleaned := stripComments(source)
	m := &wgslModule{entries: make(map[ShaderType]wgslEntry)}

	for _, match := range structBlockRegex.FindAllStringSubmatch(cleaned, -1) {
		m.structs = append(m.structs, wgslStruct{name: match[1], fields: parseFields(match[2])})
	}
	m.layouts = structLayouts(m.structs)

	for _, match := range bindingDeclRegex.FindAllStringSubmatch(cleaned, -1) {
		group, _ := strconv.Atoi(match[1])
		binding, _ := strconv.Atoi(match[2])
		m.bindings = append(m.bindings, wgslBinding{
			group:        group,
			binding:      binding,
			addressSpace: strings.Join(strings.Fields(strings.ReplaceAll(match[3], ",", " , ")), ""),
			name:         match[4],
			typeName:     strings.TrimSpace(match[5]),
		})
	}

	for _, loc := range entryStageRegex.FindAllStringSubmatchIndex(cleaned, -1) {
		stage := cleaned[loc[2]:loc[3]]
		name := cleaned[loc[4]:loc[5]]
		shaderType := ShaderTypeVertex
		if stage == "fragment" {
			shaderType = ShaderTypeFragment
		}
		if _, seen := m.entries[shaderType]; seen {
			continue
		}
		args, ok := balancedParens(cleaned[loc[1]-1:])
		if !ok {
			continue
		}
		m.entries[shaderType] = wgslEntry{name: name, params: parseParams(args)}
	}
	return m
}

// entryPoint returns the first entry point declared for a stage, or "".
func (m *wgslModule) entryPoint(shaderType ShaderType) string {
	return m.entries[shaderType].name
}

func (m *wgslModule) findStruct(name string) (wgslStruct, bool) {
	for _, s := range m.structs {
		if s.name == name {
			return s, true
		}
	}
	return wgslStruct{}, false
}

// vertexLayouts builds one vertex buffer layout per struct parameter of the vertex entry
// point, keyed by the parameter's position among the struct parameters. Attributes are packed
// in declaration order. Parameters that are not structs of @location fields are skipped.
//
// Returns:
//   - map[int][]wgpu.VertexBufferLayout: vertex layouts keyed by buffer slot
//   - error: if a vertex input field has no matching vertex format
func (m *wgslModule) vertexLayouts() (map[int][]wgpu.VertexBufferLayout, error) {
	result := make(map[int][]wgpu.VertexBufferLayout)
	entry, ok := m.entries[ShaderTypeVertex]
	if !ok {
		return result, nil
	}

	slot := 0
	for _, p := range entry.params {
		if p.builtin {
			continue
		}
		s, ok := m.findStruct(p.typeName)
		if !ok {
			continue
		}

		attrs := make([]wgpu.VertexAttribute, 0, len(s.fields))
		var offset uint64
		for _, f := range s.fields {
			if f.builtin || f.location < 0 {
				continue
			}
			format, size, ok := vertexFormat(f.typeName)
			if !ok {
				return nil, fmt.Errorf("vertex input %s.%s: no vertex format for %s", s.name, f.name, f.typeName)
			}
			attrs = append(attrs, wgpu.VertexAttribute{
				Format:         format,
				Offset:         offset,
				ShaderLocation: uint32(f.location),
			})
			offset += size
		}
		if len(attrs) == 0 {
			continue
		}
		result[slot] = []wgpu.VertexBufferLayout{{
			ArrayStride: offset,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes:  attrs,
		}}
		slot++
	}
	return result, nil
}

// bindGroupLayouts groups the module's resource bindings into layout descriptors whose
// entries are sorted by binding and carry the given stage visibility. Buffer entries get
// MinBindingSize from the bound type's layout.
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
//   - map[int]map[int]string: variable names keyed by group and binding index
//   - error: if two resources share a group and binding
func (m *wgslModule) bindGroupLayouts(visibility wgpu.ShaderStage) (map[int]wgpu.BindGroupLayoutDescriptor, map[int]map[int]string, error) {
	entries := make(map[int][]wgpu.BindGroupLayoutEntry)
	varNames := make(map[int]map[int]string)

	for _, b := range m.bindings {
		if prev, dup := varNames[b.group][b.binding]; dup {
			return nil, nil, fmt.Errorf("@group(%d) @binding(%d) declared by both %s and %s", b.group, b.binding, prev, b.name)
		}

		entry := wgpu.BindGroupLayoutEntry{
			Binding:    uint32(b.binding),
			Visibility: visibility,
		}
		switch {
		case b.addressSpace == "uniform":
			entry.Buffer.Type = wgpu.BufferBindingTypeUniform
		case b.addressSpace == "storage" || b.addressSpace == "storage,read":
			entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
		case b.addressSpace == "storage,read_write":
			entry.Buffer.Type = wgpu.BufferBindingTypeStorage
		case b.typeName == "sampler":
			entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
		case b.typeName == "sampler_comparison":
			entry.Sampler.Type = wgpu.SamplerBindingTypeComparison
		}
		if entry.Buffer.Type != wgpu.BufferBindingTypeUndefined {
			if l, ok := m.typeLayout(b.typeName); ok {
				entry.Buffer.MinBindingSize = l.size
			}
		}

		entries[b.group] = append(entries[b.group], entry)
		if varNames[b.group] == nil {
			varNames[b.group] = make(map[int]string)
		}
		varNames[b.group][b.binding] = b.name
	}

	result := make(map[int]wgpu.BindGroupLayoutDescriptor, len(entries))
	for _, g := range slices.Sorted(maps.Keys(entries)) {
		es := entries[g]
		slices.SortFunc(es, func(a, b wgpu.BindGroupLayoutEntry) int {
			return int(a.Binding) - int(b.Binding)
		})
		result[g] = wgpu.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("group %d", g),
			Entries: es,
		}
	}
	return result, varNames, nil
}

// typeLayout resolves a type against primitives, the module's structs and arrays of either.
// A runtime-sized array resolves to one element stride, the smallest useful binding.
func (m *wgslModule) typeLayout(typeName string) (wgslLayout, bool) {
	return resolveLayout(typeName, m.layouts)
}

func resolveLayout(typeName string, structs map[string]wgslLayout) (wgslLayout, bool) {
	if l, ok := primitiveLayout(typeName); ok {
		return l, true
	}
	if l, ok := structs[typeName]; ok {
		return l, true
	}
	elem, count, ok := splitArrayType(typeName)
	if !ok {
		return wgslLayout{}, false
	}
	el, ok := resolveLayout(elem, structs)
	if !ok {
		return wgslLayout{}, false
	}
	stride := alignUp(el.size, el.align)
	if count == 0 {
		return wgslLayout{stride, el.align}, true
	}
	return wgslLayout{count * stride, el.align}, true
}

// structLayouts computes layouts for every struct whose member types resolve, iterating until
// no more structs can be resolved so declaration order does not matter. A trailing
// runtime-sized array contributes nothing to the struct's fixed size.
func structLayouts(structs []wgslStruct) map[string]wgslLayout {
	resolved := make(map[string]wgslLayout, len(structs))
	for progress := true; progress; {
		progress = false
		for _, s := range structs {
			if _, done := resolved[s.name]; done {
				continue
			}
			if l, ok := structLayout(s, resolved); ok {
				resolved[s.name] = l
				progress = true
			}
		}
	}
	return resolved
}

func structLayout(s wgslStruct, known map[string]wgslLayout) (wgslLayout, bool) {
	var offset uint64
	align := uint64(1)
	for i, f := range s.fields {
		if f.builtin {
			continue
		}
		if elem, count, isArray := splitArrayType(f.typeName); isArray && count == 0 && i == len(s.fields)-1 {
			el, ok := resolveLayout(elem, known)
			if !ok {
				return wgslLayout{}, false
			}
			align = max(align, el.align)
			break
		}
		fl, ok := resolveLayout(f.typeName, known)
		if !ok {
			return wgslLayout{}, false
		}
		offset = alignUp(offset, fl.align) + fl.size
		align = max(align, fl.align)
	}
	return wgslLayout{alignUp(offset, align), align}, true
}

// scalarTypes lists the 32-bit scalars and their vector shorthand suffixes.
var scalarTypes = map[string]string{"f": "f32", "i": "i32", "u": "u32"}

// vectorType splits vecN<T> or vecNx shorthand into its scalar and width.
func vectorType(typeName string) (scalar string, n int, ok bool) {
	rest, found := strings.CutPrefix(typeName, "vec")
	if !found || len(rest) < 2 {
		return "", 0, false
	}
	n = int(rest[0] - '0')
	if n < 2 || n > 4 {
		return "", 0, false
	}
	rest = rest[1:]
	if s, ok := scalarTypes[rest]; ok {
		return s, n, true
	}
	if inner, ok := strings.CutPrefix(rest, "<"); ok && strings.HasSuffix(inner, ">") {
		scalar = strings.TrimSpace(strings.TrimSuffix(inner, ">"))
		return scalar, n, scalar == "f32" || scalar == "i32" || scalar == "u32"
	}
	return "", 0, false
}

// primitiveLayout applies the WGSL alignment rules for 32-bit scalars, vectors and f32
// matrices: vec2 aligns to 8, vec3 and vec4 to 16, and a matCxR is C columns of vecR.
func primitiveLayout(typeName string) (wgslLayout, bool) {
	switch typeName {
	case "f32", "i32", "u32", "bool":
		return wgslLayout{4, 4}, true
	}
	if _, n, ok := vectorType(typeName); ok {
		align := uint64(16)
		if n == 2 {
			align = 8
		}
		return wgslLayout{uint64(4 * n), align}, true
	}

	rest, ok := strings.CutPrefix(typeName, "mat")
	if !ok || len(rest) < 4 || rest[1] != 'x' {
		return wgslLayout{}, false
	}
	cols, rows := int(rest[0]-'0'), int(rest[2]-'0')
	if cols < 2 || cols > 4 || rows < 2 || rows > 4 {
		return wgslLayout{}, false
	}
	if suffix := rest[3:]; suffix != "f" && suffix != "<f32>" {
		return wgslLayout{}, false
	}
	col, _ := primitiveLayout(fmt.Sprintf("vec%df", rows))
	return wgslLayout{uint64(cols) * alignUp(col.size, col.align), col.align}, true
}

// vertexFormats maps a scalar and width to a vertex format.
var vertexFormats = map[string][5]wgpu.VertexFormat{
	"f32": {1: wgpu.VertexFormatFloat32, 2: wgpu.VertexFormatFloat32x2, 3: wgpu.VertexFormatFloat32x3, 4: wgpu.VertexFormatFloat32x4},
	"u32": {1: wgpu.VertexFormatUint32, 2: wgpu.VertexFormatUint32x2, 3: wgpu.VertexFormatUint32x3, 4: wgpu.VertexFormatUint32x4},
	"i32": {1: wgpu.VertexFormatSint32, 2: wgpu.VertexFormatSint32x2, 3: wgpu.VertexFormatSint32x3, 4: wgpu.VertexFormatSint32x4},
}

// vertexFormat returns the vertex format and tightly packed byte size of a vertex input type.
func vertexFormat(typeName string) (wgpu.VertexFormat, uint64, bool) {
	scalar, n := typeName, 1
	if s, width, ok := vectorType(typeName); ok {
		scalar, n = s, width
	}
	formats, ok := vertexFormats[scalar]
	if !ok {
		return 0, 0, false
	}
	return formats[n], uint64(4 * n), true
}

// splitArrayType splits array<T, N> into (T, N) and array<T> into (T, 0).
func splitArrayType(typeName string) (elem string, count uint64, ok bool) {
	inner, found := strings.CutPrefix(typeName, "array<")
	if !found || !strings.HasSuffix(inner, ">") {
		return "", 0, false
	}
	inner = strings.TrimSuffix(inner, ">")
	parts := splitTopLevel(inner, ',')
	elem = strings.TrimSpace(parts[0])
	if len(parts) == 1 || strings.TrimSpace(parts[1]) == "" {
		return elem, 0, true
	}
	count, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil || count == 0 {
		return "", 0, false
	}
	return elem, count, true
}

func alignUp(value, align uint64) uint64 {
	if align <= 1 {
		return value
	}
	return (value + align - 1) / align * align
}

// parseFields parses a struct body into fields.
func parseFields(body string) []wgslField {
	var fields []wgslField
	for _, part := range splitTopLevel(body, ',') {
		attrs, decl := splitAttributes(part)
		name, typeName, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		f := wgslField{
			name:     strings.TrimSpace(name),
			typeName: strings.TrimSpace(typeName),
			location: -1,
		}
		if loc, ok := attrs["location"]; ok {
			if n, err := strconv.Atoi(loc); err == nil {
				f.location = n
			}
		}
		_, f.builtin = attrs["builtin"]
		fields = append(fields, f)
	}
	return fields
}

// parseParams parses an entry point parameter list.
func parseParams(list string) []wgslParam {
	var params []wgslParam
	for _, part := range splitTopLevel(list, ',') {
		attrs, decl := splitAttributes(part)
		name, typeName, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		_, builtin := attrs["builtin"]
		params = append(params, wgslParam{
			name:     strings.TrimSpace(name),
			typeName: strings.TrimSpace(typeName),
			builtin:  builtin,
		})
	}
	return params
}

// splitAttributes removes leading @attributes from a declaration and returns them by name.
func splitAttributes(decl string) (map[string]string, string) {
	attrs := make(map[string]string)
	decl = strings.TrimSpace(decl)
	for strings.HasPrefix(decl, "@") {
		loc := attributeRegex.FindStringSubmatchIndex(decl)
		if loc == nil || loc[0] != 0 {
			break
		}
		arg := ""
		if loc[4] >= 0 {
			arg = strings.TrimSpace(decl[loc[4]:loc[5]])
		}
		attrs[decl[loc[2]:loc[3]]] = arg
		decl = strings.TrimSpace(decl[loc[1]:])
	}
	return attrs, decl
}

// balancedParens returns the text between s[0] == '(' and its matching ')'.
func balancedParens(s string) (string, bool) {
	if s == "" || s[0] != '(' {
		return "", false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[1:i], true
			}
		}
	}
	return "", false
}

// splitTopLevel splits s at sep, ignoring separators nested in <>, () or [].
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '<' || c == '(' || c == '[':
			depth++
		case (c == '>' || c == ')' || c == ']') && depth > 0:
			depth--
		case c == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// stripComments removes // line comments and nested /* */ block comments in one pass.
func stripComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		next := byte(0)
		if i+1 < len(source) {
			next = source[i+1]
		}
		switch {
		case source[i] == '/' && next == '*':
			depth++
			i++
		case source[i] == '*' && next == '/' && depth > 0:
			depth--
			i++
		case depth > 0:
			if source[i] == '\n' {
				sb.WriteByte('\n')
			}
		case source[i] == '/' && next == '/':
			for i < len(source) && source[i] != '\n' {
				i++
			}
			if i < len(source) {
				sb.WriteByte('\n')
			}
		default:
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}
