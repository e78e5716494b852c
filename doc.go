// Package gfx is a minimal GPU rendering scaffold built on gogpu/wgpu.
//
// # Overview
//
// A [State] owns a GPU device, a presentation surface tied to a window,
// one fixed render pipeline and a vertex/index buffer pair holding a single
// static mesh. The host event loop creates the State once, calls
// [State.Resize] when the drawable size changes and [State.Render] once per
// frame.
//
//	state, err := gfx.New(window)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer state.Close()
//
//	for running {
//	    // on size change:
//	    _ = state.Resize(window.Size())
//	    if err := state.Render(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Elements
//
// [Element] is a small fluent builder that turns a list of points and one
// flat color into vertices:
//
//	verts := gfx.NewElement().
//	    WithColor(mgl32.Vec4{1, 0, 0, 1}).
//	    WithShape([]mgl32.Vec3{{0, 0.5, 0}, {-0.5, -0.5, 0}, {0.5, -0.5, 0}}).
//	    Build()
//
// Use [Element.Mesh] together with [WithMesh] to render a built element
// instead of the default mesh.
//
// # Windows
//
// gfx does not open windows itself. Any type implementing [Window] can be
// used; internal/sdlwindow provides one on top of SDL2.
//
// # Logging
//
// gfx is silent by default. Call [SetLogger] to enable log output.
package gfx
