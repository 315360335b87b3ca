// Package preview owns the 3D preview scene: camera, lights, orbit
// controls and the ring mesh. The scene lives in Go; a Surface draws it.
// In the desktop app the surface is the web view, fed through Wails events.
//
// Lifecycle: Uninitialized -> Initialized (Initialize) -> Rendering (Start).
// Initialize may be called again at any time and replaces the scene.
package preview
