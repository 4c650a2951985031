package ui

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/nevisdale/chiptic/internal/audio"
	"github.com/nevisdale/chiptic/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// Tab - toggle the debug panel
// P - pause
// O - one step while paused
// Backspace - reset

// The left block of a QWERTY keyboard maps onto the hex keypad:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
var keypad = map[ebiten.Key]uint8{
	ebiten.Key1: 0x1, ebiten.Key2: 0x2, ebiten.Key3: 0x3, ebiten.Key4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

var (
	pixelOn  = color.RGBA{0xE8, 0xE8, 0xD0, 0xFF}
	pixelOff = color.RGBA{0x10, 0x18, 0x10, 0xFF}
)

type Config struct {
	Title string
	// Scale is the size of one CHIP-8 pixel on screen.
	Scale int
	// IPF is the number of instructions executed per frame.
	IPF int
	// SkipUnknown steps over undecodable words instead of pausing.
	SkipUnknown bool
	// Trace logs every executed instruction.
	Trace bool
	// Debug opens the debug panel at startup.
	Debug bool
}

type UI struct {
	bus    *chip8.Bus
	beeper *audio.Beeper
	logger *log.Logger
	cfg    Config

	disasm map[uint16]string
	screen *ebiten.Image
	pixels []byte

	showDebug bool
	paused    bool
}

func New(bus *chip8.Bus, beeper *audio.Beeper, logger *log.Logger, cfg Config) *UI {
	return &UI{
		bus:       bus,
		beeper:    beeper,
		logger:    logger,
		cfg:       cfg,
		disasm:    bus.Disassemble(),
		screen:    ebiten.NewImage(chip8.ScreenWidth, chip8.ScreenHeight),
		pixels:    make([]byte, chip8.ScreenWidth*chip8.ScreenHeight*4),
		showDebug: cfg.Debug,
	}
}

func (ui *UI) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		ui.showDebug = !ui.showDebug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		ui.paused = !ui.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		ui.bus.Reset()
	}

	ui.bus.SetKeys(ui.readKeypad())

	if ui.paused {
		if inpututil.IsKeyJustPressed(ebiten.KeyO) {
			ui.step()
		}
	} else {
		for i := 0; i < ui.cfg.IPF && !ui.paused; i++ {
			ui.step()
		}
		ui.bus.TickFrame()
	}

	ui.beeper.SetPlaying(ui.bus.Sound() > 0)
	return nil
}

func (ui *UI) step() {
	if ui.cfg.Trace {
		ui.logger.Debug(ui.disasm[ui.bus.DebugInfo().PC])
	}

	err := ui.bus.Step()
	if err == nil {
		return
	}

	var opErr chip8.UnknownOpcodeError
	if ui.cfg.SkipUnknown && errors.As(err, &opErr) {
		ui.logger.Warn("skipped an unknown opcode",
			log.Hex("opcode", opErr.Opcode),
			log.Hex("address", opErr.Addr))
		return
	}

	ui.paused = true
	ui.logger.Error("execution paused", log.Err(err))
}

func (ui *UI) readKeypad() uint16 {
	var keys uint16
	for key, bit := range keypad {
		if ebiten.IsKeyPressed(key) {
			keys |= 1 << bit
		}
	}
	return keys
}

func (ui *UI) Draw(screen *ebiten.Image) {
	if ui.bus.TakeRedraw() {
		ui.refreshScreen()
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(ui.cfg.Scale), float64(ui.cfg.Scale))
	screen.DrawImage(ui.screen, op)

	if ui.showDebug {
		ui.drawDebug(screen)
	}
}

// refreshScreen rebuilds the offscreen image from the pixel rows.
// Bit 0 of a row is the leftmost pixel.
func (ui *UI) refreshScreen() {
	for y := 0; y < chip8.ScreenHeight; y++ {
		row := ui.bus.PixelRow(uint8(y))
		for x := 0; x < chip8.ScreenWidth; x++ {
			c := pixelOff
			if row>>x&1 > 0 {
				c = pixelOn
			}
			i := (y*chip8.ScreenWidth + x) * 4
			ui.pixels[i] = c.R
			ui.pixels[i+1] = c.G
			ui.pixels[i+2] = c.B
			ui.pixels[i+3] = c.A
		}
	}
	ui.screen.WritePixels(ui.pixels)
}

const (
	debugPanelWidth  = 250
	debugPanelHeight = 440

	disasmWindow = 7
)

func (ui *UI) drawDebug(screen *ebiten.Image) {
	info := ui.bus.DebugInfo()

	var infoStr strings.Builder
	fmt.Fprintf(&infoStr, " FPS: %0.0f\n", ebiten.ActualFPS())
	status := info.Mode
	if ui.paused {
		status = "PAUSED"
	}
	fmt.Fprintf(&infoStr, " STATUS: %s\n", status)
	fmt.Fprintf(&infoStr, " FRAME: %d\n", info.Frames)
	fmt.Fprintf(&infoStr, " PC: $%04X  I: $%04X\n", info.PC, info.I)
	fmt.Fprintf(&infoStr, " SP: $%02X    DT: $%02X\n", info.SP, info.Delay)
	for i, v := range info.V {
		fmt.Fprintf(&infoStr, " V%X: $%02X", i, v)
		if i%4 == 3 {
			infoStr.WriteByte('\n')
		}
	}
	infoStr.WriteByte('\n')

	addr := info.PC
	for i := 0; i < disasmWindow && addr > chip8.ProgramStart; i++ {
		addr -= 2
	}
	for i := 0; i < 2*disasmWindow+1 && addr < chip8.MaxAddress; i++ {
		marker := " "
		if addr == info.PC {
			marker = "*"
		}
		infoStr.WriteString(marker + ui.disasm[addr] + "\n")
		addr += 2
	}

	gameW, _ := ui.gameSize()
	_, h := ui.Layout(0, 0)
	vector.DrawFilledRect(screen, float32(gameW), 0, debugPanelWidth, float32(h), color.RGBA{50, 50, 50, 255}, false)
	ebitenutil.DebugPrintAt(screen, infoStr.String(), gameW, 0)
}

func (ui *UI) gameSize() (int, int) {
	return chip8.ScreenWidth * ui.cfg.Scale, chip8.ScreenHeight * ui.cfg.Scale
}

func (ui *UI) Layout(_, _ int) (int, int) {
	w, h := ui.gameSize()
	if ui.showDebug {
		w += debugPanelWidth
		if h < debugPanelHeight {
			h = debugPanelHeight
		}
	}
	return w, h
}

func RunUI(ui *UI) error {
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ui.gameSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(ui.cfg.Title)
	ebiten.SetTPS(60)
	return ebiten.RunGame(ui)
}
