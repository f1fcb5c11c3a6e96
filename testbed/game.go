package testbed

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/vitrail/engine"
	"github.com/spaghettifunk/vitrail/engine/assets"
	"github.com/spaghettifunk/vitrail/engine/assets/loaders"
	"github.com/spaghettifunk/vitrail/engine/core"
	"github.com/spaghettifunk/vitrail/engine/graphics"
	"github.com/spaghettifunk/vitrail/engine/math"
	"github.com/spaghettifunk/vitrail/engine/platform"
)

const vertexSource = `#version 460 core
layout(location = 0) in vec3 position;
layout(location = 1) in vec2 uv;
uniform mat4 model;
out vec2 fragUV;
void main() {
	gl_Position = model * vec4(position, 1.0);
	fragUV = uv;
}
`

const fragmentSource = `#version 460 core
in vec2 fragUV;
uniform sampler2D albedo;
out vec4 color;
void main() {
	color = texture(albedo, fragUV);
}
`

// vertex is the quad's interleaved layout: position at attribute 0, texture
// coordinates at attribute 1.
type vertex struct {
	Position math.Vec3
	UV       math.Vec2
}

// Game is a small demo: a spinning textured quad. It exercises the window,
// the asset pipeline and the graphics layer end to end.
type Game struct {
	config   engine.ApplicationConfig
	platform *platform.Platform
	assets   *assets.AssetManager

	driver      graphics.Driver
	backbuffer  *graphics.Framebuffer
	program     *graphics.Program
	vertexArray *graphics.VertexArray
	vertices    *graphics.Buffer[vertex]
	indices     *graphics.Buffer[uint16]
	texture     *graphics.Texture
	modelLoc    graphics.UniformLocation
}

func New(config engine.ApplicationConfig) *Game {
	return &Game{config: config}
}

// Initialize opens the window, picks a graphics backend and builds the
// scene.
func (g *Game) Initialize() error {
	p, err := platform.New()
	if err != nil {
		return err
	}
	g.platform = p

	if err := p.Startup(g.config.Name, g.config.StartPosX, g.config.StartPosY, g.config.StartWidth, g.config.StartHeight); err != nil {
		return err
	}

	if g.config.Backend != "" {
		g.driver, err = graphics.Open(g.config.Backend)
	} else {
		g.driver, err = graphics.Default()
	}
	if err != nil {
		return err
	}
	graphics.LogDebugMessages(g.driver)

	am, err := assets.NewAssetManager()
	if err != nil {
		return err
	}
	am.RegisterLoader(assets.ResourceTypeShader, &loaders.ShaderLoader{})
	am.RegisterLoader(assets.ResourceTypeImage, &loaders.ImageLoader{})
	if err := am.Initialize(g.config.AssetsDir); err != nil {
		core.LogWarn("asset directory %s not watchable: %s", g.config.AssetsDir, err)
	}
	g.assets = am

	p.OnResize(func(width, height int) {
		graphics.SetViewport(g.driver, 0, 0, int32(width), int32(height))
	})
	p.OnKey(func(key glfw.Key, action glfw.Action) {
		if key == glfw.KeyEscape && action == glfw.Press {
			p.RequestClose()
		}
	})

	return g.buildScene()
}

func (g *Game) buildScene() error {
	d := g.driver
	g.backbuffer = graphics.Backbuffer(d)

	program, err := graphics.FromSources(d, "quad", vertexSource, fragmentSource)
	if err != nil {
		return err
	}
	g.program = program

	g.modelLoc, err = program.Uniform("model")
	if err != nil {
		return err
	}

	g.vertices, err = graphics.NewBufferWithData(d, graphics.ArrayBuffer, []vertex{
		{Position: math.Vec3{X: -0.5, Y: -0.5}, UV: math.Vec2{}},
		{Position: math.Vec3{X: 0.5, Y: -0.5}, UV: math.Vec2{X: 1}},
		{Position: math.Vec3{X: 0.5, Y: 0.5}, UV: math.Vec2{X: 1, Y: 1}},
		{Position: math.Vec3{X: -0.5, Y: 0.5}, UV: math.Vec2{Y: 1}},
	})
	if err != nil {
		return err
	}

	g.indices, err = graphics.NewBufferWithData(d, graphics.ElementArrayBuffer,
		[]uint16{0, 1, 2, 2, 3, 0})
	if err != nil {
		return err
	}

	g.vertexArray, err = graphics.NewVertexArray(d)
	if err != nil {
		return err
	}
	if _, err := graphics.AttachVertexBuffer(g.vertexArray, g.vertices, 0); err != nil {
		return err
	}
	if err := graphics.AttachElementBuffer(g.vertexArray, g.indices); err != nil {
		return err
	}

	g.texture, err = g.loadTexture()
	if err != nil {
		return err
	}

	unit, err := g.texture.Unit(0)
	if err != nil {
		return err
	}
	albedo, err := program.Uniform("albedo")
	if err != nil {
		return err
	}
	if err := program.SetUniform(albedo, unit); err != nil {
		return err
	}

	graphics.SetClearColor(d, 0.1, 0.1, 0.15, 1)
	return nil
}

// loadTexture pulls the demo texture from the asset directory, falling back
// to a generated checkerboard when it is missing.
func (g *Game) loadTexture() (*graphics.Texture, error) {
	t, err := assets.LoadTexture(g.driver, g.assets, "textures/checker.png")
	if err == nil {
		return t, nil
	}
	core.LogWarn("demo texture unavailable (%s), generating a checkerboard", err)
	return checkerboard(g.driver, 64, 8)
}

// checkerboard builds a size x size RGBA texture with cells of the given
// width.
func checkerboard(d graphics.Driver, size, cell int) (*graphics.Texture, error) {
	pixels := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			shade := byte(40)
			if (x/cell+y/cell)%2 == 0 {
				shade = 220
			}
			i := (y*size + x) * 4
			pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = shade, shade, shade, 255
		}
	}
	img := &assets.ImageData{Width: size, Height: size, Pixels: pixels}
	return assets.UploadTexture(d, img)
}

// RequestClose asks the frame loop to exit after the current frame.
func (g *Game) RequestClose() {
	if g.platform != nil {
		g.platform.RequestClose()
	}
}

// Run drives the frame loop until the window closes.
func (g *Game) Run() error {
	for !g.platform.ShouldClose() {
		g.platform.PumpMessages()

		if err := g.renderFrame(g.platform.Time()); err != nil {
			return err
		}
		g.platform.SwapBuffers()
	}
	return nil
}

func (g *Game) renderFrame(elapsed float64) error {
	model := math.RotateZ(float32(elapsed))
	if err := g.program.SetUniform(g.modelLoc, graphics.UniformMat4(model)); err != nil {
		return err
	}

	if err := g.backbuffer.Clear(graphics.ClearColorBit | graphics.ClearDepthBit); err != nil {
		return err
	}
	return g.backbuffer.DrawElements(g.program, g.vertexArray, graphics.Triangles, 6, 0)
}

// Shutdown tears the scene down in reverse construction order.
func (g *Game) Shutdown() error {
	if g.texture != nil {
		g.texture.Destroy()
	}
	if g.vertexArray != nil {
		g.vertexArray.Destroy()
	}
	if g.indices != nil {
		g.indices.Destroy()
	}
	if g.vertices != nil {
		g.vertices.Destroy()
	}
	if g.program != nil {
		g.program.Destroy()
	}
	if g.assets != nil {
		if err := g.assets.Shutdown(); err != nil {
			return fmt.Errorf("shutdown assets: %w", err)
		}
	}
	if g.platform != nil {
		return g.platform.Shutdown()
	}
	return nil
}
