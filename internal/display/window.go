// Package display shows accumulated frames in an OpenGL window. The renderer
// hands it a packed RGBA buffer each frame; the window uploads it to a
// texture and draws a fullscreen quad.
package display

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window owns the GLFW window and the GL resources for presenting frames.
// All methods must be called from the main thread.
type Window struct {
	window  *glfw.Window
	program uint32
	quadVAO uint32
	quadVBO uint32
	texture uint32

	texWidth  int
	texHeight int
}

// New creates the window and initializes OpenGL
func New(title string, width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %v", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %v", err)
	}

	w := &Window{window: window}
	if w.program, err = createShaderProgram(quadVertexShader, quadFragmentShader); err != nil {
		w.Destroy()
		return nil, err
	}
	w.setupQuad()
	w.setupTexture()

	gl.ClearColor(0, 0, 0, 1)
	return w, nil
}

// setupQuad creates the fullscreen quad. The frame buffer's first row is the
// bottom of the image, so the quad's bottom edge samples v=0.
func (w *Window) setupQuad() {
	vertices := []float32{
		// Positions  // Texture coords
		-1.0, -1.0, 0.0, 0.0,
		1.0, -1.0, 1.0, 0.0,
		1.0, 1.0, 1.0, 1.0,
		-1.0, 1.0, 0.0, 1.0,
	}

	gl.GenVertexArrays(1, &w.quadVAO)
	gl.GenBuffers(1, &w.quadVBO)

	gl.BindVertexArray(w.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

func (w *Window) setupTexture() {
	gl.GenTextures(1, &w.texture)
	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

// Present uploads a packed RGBA frame and draws it
func (w *Window) Present(width, height int, pixels []byte) {
	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	if width != w.texWidth || height != w.texHeight {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height),
			0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
		w.texWidth, w.texHeight = width, height
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height),
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	}

	fbWidth, fbHeight := w.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(w.program)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.Uniform1i(gl.GetUniformLocation(w.program, gl.Str("frame\x00")), 0)

	gl.BindVertexArray(w.quadVAO)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)

	w.window.SwapBuffers()
	glfw.PollEvents()
}

// ShouldClose reports whether the user asked to close the window
func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose() || w.window.GetKey(glfw.KeyEscape) == glfw.Press
}

// KeyPressed reports whether a key is currently held
func (w *Window) KeyPressed(key glfw.Key) bool {
	return w.window.GetKey(key) == glfw.Press
}

// Size returns the window size in screen coordinates
func (w *Window) Size() (int, int) {
	return w.window.GetSize()
}

// Destroy releases GL resources and shuts GLFW down
func (w *Window) Destroy() {
	if w.program != 0 {
		gl.DeleteProgram(w.program)
	}
	if w.quadVBO != 0 {
		gl.DeleteBuffers(1, &w.quadVBO)
	}
	if w.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &w.quadVAO)
	}
	if w.texture != 0 {
		gl.DeleteTextures(1, &w.texture)
	}
	w.window.Destroy()
	glfw.Terminate()
}
