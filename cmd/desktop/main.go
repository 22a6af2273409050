// Command desktop opens a window showing a C file translated to Python or
// Java. Tab switches language, arrows and the wheel scroll, S saves.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"ctox/pkg/config"
	"ctox/pkg/ctxlog"
	"ctox/pkg/diag"
	"ctox/pkg/grid"
	"ctox/pkg/lower"
	"ctox/pkg/utils"
)

const (
	screenW = 800
	screenH = 600
	// bottom rows kept free for the status line
	statusH = 20
)

var languages = []string{"python", "java"}

// viewer holds everything Update and Draw need. Only convert touches the
// translator; the rest is plain state so it can be tested without a window.
type viewer struct {
	ctx     context.Context
	cfg     *config.Config
	srcName string
	source  string
	baseDir string

	lang   int
	lines  []string
	diags  diag.List
	status string
	scroll int

	layout grid.Layout
	face   text.Face
}

func newViewer(ctx context.Context, cfg *config.Config, path, source string) (*viewer, error) {
	_, baseDir, err := utils.GetPathInfo(path)
	if err != nil {
		return nil, err
	}
	v := &viewer{
		ctx:     ctx,
		cfg:     cfg,
		srcName: filepath.Base(path),
		source:  source,
		baseDir: baseDir,
		layout:  grid.Layout{OriginX: 8, OriginY: 8, CellW: 7, CellH: 14},
	}
	v.convert()
	return v, nil
}

func (v *viewer) language() string { return languages[v.lang] }

// convert re-runs the translation for the current language and resets the
// scroll position.
func (v *viewer) convert() {
	v.scroll = 0
	v.lines, v.diags = nil, nil

	backend, err := v.cfg.Backend(v.language())
	if err != nil {
		v.status = err.Error()
		return
	}
	res, err := lower.Translate(v.ctx, v.source, backend, v.cfg.Options())
	if err != nil {
		var derr *diag.Error
		if errors.As(err, &derr) {
			v.diags = diag.List{derr.Diagnostic}
		}
		v.status = fmt.Sprintf("%s: %v", v.srcName, err)
		return
	}
	v.lines = strings.Split(res.Source, "\n")
	v.diags = res.Diagnostics
	v.status = fmt.Sprintf("%s -> %s (%s)  [Tab] switch  [S] save", v.srcName, v.language(), diag.Summary(v.diags))
}

func (v *viewer) toggle() {
	v.lang = (v.lang + 1) % len(languages)
	v.convert()
}

// visibleRows is how many code lines fit above the status line.
func (v *viewer) visibleRows() int {
	return v.layout.Rows(screenH - statusH)
}

func (v *viewer) scrollBy(n int) {
	limit := len(v.lines) - v.visibleRows()
	if limit < 0 {
		limit = 0
	}
	v.scroll = min(max(v.scroll+n, 0), limit)
}

func (v *viewer) visibleLines() []string {
	end := min(v.scroll+v.visibleRows(), len(v.lines))
	return v.lines[v.scroll:end]
}

// save writes the current output next to the source file.
func (v *viewer) save() (string, error) {
	if v.lines == nil {
		return "", errors.New("nothing to save")
	}
	backend, err := v.cfg.Backend(v.language())
	if err != nil {
		return "", err
	}
	dir := utils.ResolveOutputDir(v.baseDir, v.cfg.OutputDir)
	path := utils.OutputPath(dir, v.cfg.OutputName, backend.Extension())
	if err := utils.WriteOutput(path, strings.Join(v.lines, "\n")); err != nil {
		return "", err
	}
	return path, nil
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		v.toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		v.scrollBy(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		v.scrollBy(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		v.scrollBy(v.visibleRows())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		v.scrollBy(-v.visibleRows())
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		v.scrollBy(-int(dy * 3))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if path, err := v.save(); err != nil {
			v.status = "save failed: " + err.Error()
		} else {
			v.status = "saved " + path
		}
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x1e, 0x1e, 0x1e, 0xff})

	for row, line := range v.visibleLines() {
		px, py := v.layout.At(0, row)
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(px), float64(py))
		op.ColorScale.ScaleWithColor(color.RGBA{0xd4, 0xd4, 0xd4, 0xff})
		text.Draw(screen, line, v.face, op)
	}

	ebitenutil.DebugPrintAt(screen, v.status, 4, screenH-statusH+2)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

func main() {
	cfgPath := flag.String("config", "", "path to a ctox.hcl configuration file")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: desktop [-config ctox.hcl] file.c")
	}
	filename := flag.Arg(0)

	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New(os.Stderr, "text", "warn"))

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(ctx, *cfgPath); err != nil {
			log.Fatal(err)
		}
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		log.Fatalf("Failed to read source file: %v", err)
	}

	v, err := newViewer(ctx, cfg, filename, string(source))
	if err != nil {
		log.Fatal(err)
	}
	v.face = text.NewGoXFace(basicfont.Face7x13)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("ctox - " + v.srcName)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
