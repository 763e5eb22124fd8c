// Package shading implements the per-vertex and per-fragment stages of the desk
// renderer: the local-to-clip vertex transform, the ambient and ceiling base
// light, accumulation of up to MaxLights point lights, and distance fog.
//
// Every function in this package is a pure function of its arguments. Camera,
// model and lighting snapshots are passed by value and never retained, so the
// stages may be invoked concurrently from any number of goroutines. The same
// math runs on the GPU through the desk WGSL shader in engine/renderer/shader.
package shading
