package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	fieldWidth  = 1024
	fieldHeight = 640
)

// skyPalette picks the backdrop colour per biome, darkened at night.
var skyPalette = [biomeCount]color.RGBA{
	BiomeTemperate: {R: 110, G: 160, B: 215, A: 255},
	BiomeDesert:    {R: 220, G: 185, B: 130, A: 255},
	BiomeArctic:    {R: 185, G: 205, B: 225, A: 255},
	BiomeVolcanic:  {R: 120, G: 75, B: 70, A: 255},
}

// groundPalette tints the solid terrain per biome.
var groundPalette = [biomeCount]color.RGBA{
	BiomeTemperate: {R: 90, G: 125, B: 60, A: 255},
	BiomeDesert:    {R: 190, G: 155, B: 95, A: 255},
	BiomeArctic:    {R: 225, G: 230, B: 240, A: 255},
	BiomeVolcanic:  {R: 75, G: 60, B: 60, A: 255},
}

var tankPalette = []color.RGBA{
	{R: 205, G: 70, B: 60, A: 255},
	{R: 70, G: 110, B: 205, A: 255},
	{R: 80, G: 180, B: 90, A: 255},
	{R: 200, G: 170, B: 60, A: 255},
}

// Game is the ebiten front end over a Match: input, terrain blitting, aim
// preview and the HUD. All simulation state lives in the match; the front
// end only mirrors it.
type Game struct {
	match *Match
	level LevelConfig
	sink  EventSink

	terrainImg *ebiten.Image
	terrainPix []byte // RGBA staging buffer, re-uploaded when columns change
	sky        color.RGBA
	ground     color.RGBA

	preview      []float64 // x,y pairs of the aim preview arc
	previewDirty bool
	flashes      []flash

	prevKeys  map[ebiten.Key]bool
	statusMsg string
}

// flash is a short-lived explosion ring drawn by the renderer.
type flash struct {
	x, y, radius float64
	age, life    int
}

// gameSink forwards match events to the caller's sink and mirrors explosions
// into the renderer's flash list.
type gameSink struct {
	EventSink
	g *Game
}

func (s gameSink) Explosion(weapon WeaponType, x, y float64) {
	s.EventSink.Explosion(weapon, x, y)
	s.g.flashes = append(s.g.flashes, flash{
		x: x, y: y, radius: weapon.Config().ExplosionRadius, life: 14,
	})
}

// New builds a front end and its first match from the level config. sink
// receives match events (pass the sound manager, or nil for silence).
func New(level LevelConfig, sink EventSink) *Game {
	if sink == nil {
		sink = NopSink{}
	}
	g := &Game{
		level:    level,
		sink:     sink,
		prevKeys: make(map[ebiten.Key]bool),
	}
	g.startMatch(level)
	return g
}

// startMatch builds a fresh match and rebuilds the terrain buffer.
func (g *Game) startMatch(level LevelConfig) {
	m := NewMatch(level, fieldWidth, fieldHeight, gameSink{EventSink: g.sink, g: g}, nil)
	m.AddHumanTank("Player", 0.14, 1)
	m.AddAITank("Rook", 0.86, -1, DifficultyNormal)
	m.Start()

	g.match = m
	g.level = level
	g.sky = skyPalette[level.Biome]
	g.ground = groundPalette[level.Biome]
	if level.TimeOfDay == TimeNight {
		g.sky = scaleColor(g.sky, 0.35)
		g.ground = scaleColor(g.ground, 0.55)
	}
	g.rebuildTerrain()
	g.previewDirty = true
	g.flashes = g.flashes[:0]
	g.statusMsg = ""
}

func scaleColor(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: 255,
	}
}

// rebuildTerrain redraws the whole terrain buffer from the field.
func (g *Game) rebuildTerrain() {
	if g.terrainImg == nil {
		g.terrainImg = ebiten.NewImage(fieldWidth, fieldHeight)
		g.terrainPix = make([]byte, fieldWidth*fieldHeight*4)
	}
	for x := 0; x < fieldWidth; x++ {
		g.paintColumn(x)
	}
	g.terrainImg.WritePixels(g.terrainPix)
}

// paintColumn refreshes one column of the staging buffer.
func (g *Game) paintColumn(x int) {
	tf := g.match.Terrain
	for y := 0; y < fieldHeight; y++ {
		i := (y*fieldWidth + x) * 4
		if tf.IsSolid(x, y) {
			g.terrainPix[i] = g.ground.R
			g.terrainPix[i+1] = g.ground.G
			g.terrainPix[i+2] = g.ground.B
			g.terrainPix[i+3] = 255
		} else {
			g.terrainPix[i+3] = 0
		}
	}
}

// refreshDirtyColumns repaints only the columns craters touched this frame.
func (g *Game) refreshDirtyColumns() {
	cols := g.match.DrainDirtyColumns()
	if len(cols) == 0 {
		return
	}
	for _, x := range cols {
		g.paintColumn(x)
	}
	g.terrainImg.WritePixels(g.terrainPix)
}

// keyJustPressed is edge-triggered key detection against last frame's state.
func (g *Game) keyJustPressed(k ebiten.Key) bool {
	return ebiten.IsKeyPressed(k) && !g.prevKeys[k]
}

func (g *Game) handleInput() {
	tracked := []ebiten.Key{ebiten.KeySpace, ebiten.KeyTab, ebiten.KeyC, ebiten.KeyR}

	t := g.match.CurrentTank()
	if t.Human && g.match.CanFire() {
		fine := 1.0
		if ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
			fine = 0.2
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
			t.SetAngle(t.Angle + fine)
			g.previewDirty = true
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
			t.SetAngle(t.Angle - fine)
			g.previewDirty = true
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
			t.SetPower(t.Power + fine)
			g.previewDirty = true
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
			t.SetPower(t.Power - fine)
			g.previewDirty = true
		}
		if g.keyJustPressed(ebiten.KeyTab) {
			t.CycleWeapon()
			g.previewDirty = true
		}
		if g.keyJustPressed(ebiten.KeySpace) {
			if err := g.match.Fire(); err != nil {
				g.statusMsg = err.Error()
			} else {
				g.preview = nil
				g.statusMsg = ""
			}
		}
	}

	if g.keyJustPressed(ebiten.KeyC) {
		if err := g.match.BuildMatchReport().CopyToClipboard(); err != nil {
			g.statusMsg = fmt.Sprintf("clipboard: %v", err)
		} else {
			g.statusMsg = "report copied"
		}
	}
	if g.keyJustPressed(ebiten.KeyR) {
		next := g.level
		next.Seed++
		g.startMatch(next)
	}

	for _, k := range tracked {
		g.prevKeys[k] = ebiten.IsKeyPressed(k)
	}
}

// updatePreview re-simulates the aim arc for the human player. Sampled every
// few ticks of simulated flight, capped so a max-power shot stays cheap.
func (g *Game) updatePreview() {
	t := g.match.CurrentTank()
	if !t.Human || !g.match.CanFire() {
		g.preview = nil
		return
	}
	mx, my := t.MuzzlePosition()
	vx, vy := launchVelocity(t.Angle, t.Power, t.Weapon.Config().SpeedMul, t.Facing)
	p := Projectile{X: mx, Y: my, VX: vx, VY: vy, LastX: mx, LastY: my, Owner: t.ID}

	g.preview = g.preview[:0]
	for i := 0; i < 240; i++ {
		p.Advance(tickDT, g.match.Env)
		if i%4 == 0 {
			g.preview = append(g.preview, p.X, p.Y)
		}
		res := ResolveCollision(&p, g.match.Terrain, nil)
		if res.Kind != CollisionNone {
			break
		}
	}
	g.previewDirty = false
}

func (g *Game) Update() error {
	g.handleInput()
	g.match.Tick()
	g.refreshDirtyColumns()

	kept := g.flashes[:0]
	for _, f := range g.flashes {
		f.age++
		if f.age < f.life {
			kept = append(kept, f)
		}
	}
	g.flashes = kept

	if g.previewDirty {
		g.updatePreview()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.sky)
	screen.DrawImage(g.terrainImg, nil)

	for i := 0; i+1 < len(g.preview); i += 2 {
		vector.DrawFilledCircle(screen, float32(g.preview[i]), float32(g.preview[i+1]), 1.5,
			color.RGBA{R: 255, G: 255, B: 255, A: 120}, false)
	}

	for _, t := range g.match.Tanks {
		g.drawTank(screen, t)
	}
	for _, p := range g.match.Projectiles() {
		clr := p.Weapon.Config().Color
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), 2.5, clr, true)
	}

	for _, f := range g.flashes {
		fade := 1 - float64(f.age)/float64(f.life)
		r := float32(f.radius * (0.4 + 0.6*(1-fade)))
		vector.DrawFilledCircle(screen, float32(f.x), float32(f.y), r,
			color.RGBA{R: 255, G: 210, B: 120, A: uint8(200 * fade)}, true)
	}

	g.drawHUD(screen)
}

func (g *Game) drawTank(screen *ebiten.Image, t *Tank) {
	clr := tankPalette[t.ID%len(tankPalette)]
	if !t.Alive() {
		clr = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	}
	x, y := float32(t.X), float32(t.Y)

	// Hull and barrel.
	vector.DrawFilledRect(screen, x-float32(tankHalfWidth), y-4, float32(tankHalfWidth)*2, 8, clr, true)
	if t.Alive() {
		mx, my := t.MuzzlePosition()
		vector.StrokeLine(screen, x, y, float32(mx), float32(my), 2, clr, true)
	}

	// Shield bubble.
	if t.Shield != nil && t.Shield.Active {
		vector.StrokeCircle(screen, x, y, float32(t.Shield.Radius), 1,
			color.RGBA{R: 120, G: 200, B: 255, A: 160}, true)
	}

	// Health bar.
	frac := float32(t.Health / tankMaxHealth)
	vector.DrawFilledRect(screen, x-12, y-14, 24, 3, color.RGBA{R: 40, G: 40, B: 40, A: 200}, false)
	vector.DrawFilledRect(screen, x-12, y-14, 24*frac, 3, color.RGBA{R: 90, G: 220, B: 90, A: 220}, false)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	t := g.match.CurrentTank()
	face := basicfont.Face7x13

	line1 := fmt.Sprintf("%s  angle %5.1f  power %5.1f  weapon %s (%s)",
		t.Name, t.Angle, t.Power, t.Weapon.Config().Name, ammoLabel(t))
	line2 := fmt.Sprintf("wind %+.1f  turn %d  [arrows] aim  [tab] weapon  [space] fire  [c] report  [r] new match",
		g.match.Env.WindX, g.match.Scheduler.Turns()+1)

	text.Draw(screen, line1, face, 10, 18, color.White)
	text.Draw(screen, line2, face, 10, 34, color.RGBA{R: 210, G: 210, B: 210, A: 255})

	if g.match.Over() {
		msg := "Draw - press R for a new match"
		if w := g.match.Winner(); w != nil {
			msg = fmt.Sprintf("%s wins - press R for a new match", w.Name)
		}
		text.Draw(screen, msg, face, fieldWidth/2-len(msg)*7/2, fieldHeight/2, color.White)
	}
	if g.statusMsg != "" {
		text.Draw(screen, g.statusMsg, face, 10, fieldHeight-10, color.RGBA{R: 255, G: 220, B: 120, A: 255})
	}
}

func ammoLabel(t *Tank) string {
	if t.Ammo[t.Weapon] < 0 {
		return "inf"
	}
	return fmt.Sprintf("%d left", t.Ammo[t.Weapon])
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return fieldWidth, fieldHeight
}
