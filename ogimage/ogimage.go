package ogimage

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"
	"sync"

	"github.com/invoiceflow/site/share"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Open Graph image size
const (
	Width  = 1200
	Height = 630
)

const (
	padding       = 80
	maxTitleLines = 3
	maxSubLines   = 2
	ellipsis      = "…"
)

// Card the text of an Open Graph image
type Card struct {
	Title    string
	Subtitle string
	Kind     string
}

// Theme the colours of a page kind
type Theme struct {
	Label      string
	Background color.RGBA
	Accent     color.RGBA
}

// Themes by page kind
var Themes = map[string]Theme{
	"home":        {Label: "Invoice processing", Background: rgb(0x0f172a), Accent: rgb(0x38bdf8)},
	"alternative": {Label: "Alternatives", Background: rgb(0x1e1b4b), Accent: rgb(0xa78bfa)},
	"blog":        {Label: "Blog", Background: rgb(0x052e16), Accent: rgb(0x4ade80)},
	"guide":       {Label: "Guide", Background: rgb(0x431407), Accent: rgb(0xfb923c)},
	"template":    {Label: "Invoice template", Background: rgb(0x172554), Accent: rgb(0x60a5fa)},
	"tool":        {Label: "Free tool", Background: rgb(0x4a044e), Accent: rgb(0xf472b6)},
	"page":        {Label: "", Background: rgb(0x111827), Accent: rgb(0x9ca3af)},
}

func rgb(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

var (
	fonts     map[string]*opentype.Font
	fontsOnce sync.Once
	fontsErr  error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		fonts = map[string]*opentype.Font{}
		for name, ttf := range map[string][]byte{"bold": gobold.TTF, "regular": goregular.TTF} {
			f, err := opentype.Parse(ttf)
			if err != nil {
				fontsErr = fmt.Errorf("parse %s font: %w", name, err)
				return
			}
			fonts[name] = f
		}
	})
	return fontsErr
}

// face faces are not safe for concurrent use, each render opens its own
func face(name string, size float64) (font.Face, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	return opentype.NewFace(fonts[name], &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
}

// ThemeOf the theme of a page kind, unknown kinds get the plain page theme
func ThemeOf(kind string) Theme {
	if theme, has := Themes[kind]; has {
		return theme
	}
	return Themes["page"]
}

// Draw paint the card onto a new 1200x630 image
func Draw(card Card) (*image.RGBA, error) {
	theme := ThemeOf(card.Kind)
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(theme.Background), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, Width, 12), image.NewUniform(theme.Accent), image.Point{}, draw.Src)

	label, err := face("bold", 28)
	if err != nil {
		return nil, err
	}
	defer label.Close()

	title, err := face("bold", 64)
	if err != nil {
		return nil, err
	}
	defer title.Close()

	sub, err := face("regular", 32)
	if err != nil {
		return nil, err
	}
	defer sub.Close()

	white := image.NewUniform(color.White)
	muted := image.NewUniform(color.RGBA{R: 0xcb, G: 0xd5, B: 0xe1, A: 0xff})
	width := Width - 2*padding

	y := padding + 28
	if theme.Label != "" {
		text(img, label, image.NewUniform(theme.Accent), padding, y, strings.ToUpper(theme.Label))
		y += 56
	}

	y += 48
	for _, line := range Wrap(title, card.Title, width, maxTitleLines) {
		text(img, title, white, padding, y, line)
		y += 78
	}

	if card.Subtitle != "" {
		y += 12
		for _, line := range Wrap(sub, card.Subtitle, width, maxSubLines) {
			text(img, sub, muted, padding, y, line)
			y += 44
		}
	}

	footer := Height - padding + 20
	text(img, label, white, padding, footer, share.Site.Name)
	domain := share.Site.Domain
	text(img, label, muted, Width-padding-font.MeasureString(label, domain).Ceil(), footer, domain)
	return img, nil
}

// Render write the card as PNG
func Render(w io.Writer, card Card) error {
	img, err := Draw(card)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// RenderLogo write the square site logo as PNG
func RenderLogo(w io.Writer, size int) error {
	theme := Themes["home"]
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(theme.Background), image.Point{}, draw.Src)

	mark, err := face("bold", float64(size)*0.5)
	if err != nil {
		return err
	}
	defer mark.Close()

	initials := strings.ToUpper(share.Site.Name[:1])
	if i := strings.IndexFunc(share.Site.Name[1:], func(r rune) bool { return r >= 'A' && r <= 'Z' }); i >= 0 {
		initials += string(share.Site.Name[i+1])
	}
	x := (size - font.MeasureString(mark, initials).Ceil()) / 2
	y := size/2 + mark.Metrics().CapHeight.Ceil()/2
	text(img, mark, image.NewUniform(theme.Accent), x, y, initials)
	return png.Encode(w, img)
}

func text(dst draw.Image, f font.Face, src image.Image, x, y int, s string) {
	d := font.Drawer{Dst: dst, Src: src, Face: f, Dot: fixed.P(x, y)}
	d.DrawString(s)
}

// Wrap break the text into lines no wider than width. Text beyond max lines
// is cut and the last line ends with an ellipsis.
func Wrap(f font.Face, s string, width int, max int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	fits := func(line string) bool {
		return font.MeasureString(f, line).Ceil() <= width
	}

	lines := []string{}
	line := ""
	for _, word := range words {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if fits(candidate) || line == "" {
			line = candidate
			continue
		}

		lines = append(lines, line)
		if len(lines) == max {
			last := lines[max-1]
			for !fits(last+ellipsis) && strings.Contains(last, " ") {
				last = last[:strings.LastIndex(last, " ")]
			}
			lines[max-1] = last + ellipsis
			return lines
		}
		line = word
	}
	return append(lines, line)
}
