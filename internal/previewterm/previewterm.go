// Package previewterm shows a generated stereogram inline in the
// user's terminal, picking whichever graphics protocol the terminal
// supports: Kitty, iTerm2-style inline images, Sixel, or a chafa
// fallback.
package previewterm

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"os/exec"
	"strings"

	"github.com/wb4/sgcreate/internal/raster"
)

var debugEnabled bool

func init() {
	debug := os.Getenv("SGCREATE_PREVIEW_DEBUG")
	if debug == "1" || debug == "true" {
		debugEnabled = true
	}
}

func debugf(format string, args ...interface{}) {
	if debugEnabled {
		fmt.Fprintf(os.Stderr, "previewterm: "+format+"\n", args...)
	}
}

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "kitty") || strings.Contains(term, "ghostty") || strings.Contains(term, "ghost") {
		return true
	}
	if os.Getenv("KONSOLE_VERSION") != "" {
		return true
	}
	return false
}

func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "VSCode", "Tabby", "Bobcat":
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "wezterm") || strings.Contains(term, "warp") || strings.Contains(term, "tabby") ||
		strings.Contains(term, "vscode") || strings.Contains(term, "wez") {
		return true
	}
	if os.Getenv("ITERM_SESSION_ID") != "" || os.Getenv("TERM_PROGRAM") == "iTerm.app" {
		return true
	}
	return false
}

func isSixelCapable() bool {
	if os.Getenv("SGCREATE_SIXEL_PREVIEW") == "1" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "foot") || strings.Contains(term, "st") || strings.Contains(term, "linux") {
		return true
	}
	if os.Getenv("WT_SESSION") != "" {
		return true
	}
	return false
}

func hasChafa() bool {
	if os.Getenv("SGCREATE_CHAFA_PREVIEW") == "1" {
		return true
	}
	_, err := exec.LookPath("chafa")
	return err == nil
}

func postImageNewlines(requestedRows int) int {
	if requestedRows > 0 {
		switch {
		case requestedRows <= 2:
			return 1
		case requestedRows <= 6:
			return 2
		case requestedRows <= 20:
			return 3
		default:
			return 4
		}
	}
	return 1
}

// Supported reports whether the current environment can likely
// display an inline image preview.
func Supported() bool {
	return isKitty() || isInlineImageCapable() || isSixelCapable() || hasChafa()
}

// Size conveys a target placement for terminal preview backends.
type Size struct {
	Cols        int
	Rows        int
	PixelWidth  int
	PixelHeight int
}

func computeSize(width, height int) Size {
	const charW = 8
	const charH = 16
	const minCols, minRows = 6, 3
	const maxCols, maxRows = 80, 40

	maxPixelW := maxCols * charW
	maxPixelH := maxRows * charH

	scaleW := float64(maxPixelW) / float64(width)
	scaleH := float64(maxPixelH) / float64(height)
	scale := math.Min(1.0, math.Min(scaleW, scaleH))

	targetW := int(math.Round(float64(width) * scale))
	targetH := int(math.Round(float64(height) * scale))

	cols := int(math.Round(float64(targetW) / float64(charW)))
	rows := int(math.Round(float64(targetH) / float64(charH)))

	if cols < minCols {
		cols = minCols
	}
	if cols > maxCols {
		cols = maxCols
	}
	if rows < minRows {
		rows = minRows
	}
	if rows > maxRows {
		rows = maxRows
	}

	return Size{Cols: cols, Rows: rows, PixelWidth: cols * charW, PixelHeight: rows * charH}
}

// Show encodes img as PNG (or JPEG, if format requests it) and writes
// it to the terminal using whatever inline-image protocol this
// environment supports, falling back through iTerm2-style inline,
// kitty, sixel, and chafa in that order.
func Show(img *raster.Image, format string) error {
	if img == nil {
		return fmt.Errorf("previewterm: nil image")
	}
	std := img.ToStdImage()

	var buf bytes.Buffer
	f := strings.ToLower(format)
	if isKitty() {
		debugf("forcing png encoding for detected kitty backend")
		f = "png"
	}
	if f == "jpeg" || f == "jpg" {
		if err := jpeg.Encode(&buf, std, &jpeg.Options{Quality: 92}); err != nil {
			return fmt.Errorf("previewterm: jpeg encode: %w", err)
		}
	} else {
		if err := png.Encode(&buf, std); err != nil {
			return fmt.Errorf("previewterm: png encode: %w", err)
		}
		f = "png"
	}

	size := computeSize(img.Width, img.Height)
	return send(buf.Bytes(), f, size)
}

func send(blob []byte, format string, size Size) error {
	if len(blob) == 0 {
		return fmt.Errorf("previewterm: empty image blob")
	}

	if isInlineImageCapable() {
		if err := sendInline(blob, format, size); err != nil {
			debugf("inline protocol failed: %v", err)
			if isKitty() {
				if err2 := sendKitty(blob, format, size); err2 == nil {
					return nil
				}
			}
			if isSixelCapable() {
				if err3 := sendSixel(blob, format, size); err3 == nil {
					return nil
				}
			}
			if hasChafa() {
				if err4 := sendChafa(blob, format, size); err4 == nil {
					return nil
				}
			}
			return fmt.Errorf("previewterm: inline image preview failed: %w", err)
		}
		return nil
	}

	if isKitty() {
		if err := sendKitty(blob, "png", size); err != nil {
			if isSixelCapable() {
				if err3 := sendSixel(blob, format, size); err3 == nil {
					return nil
				}
			}
			if hasChafa() {
				if err4 := sendChafa(blob, format, size); err4 == nil {
					return nil
				}
			}
			return fmt.Errorf("previewterm: kitty preview failed: %w", err)
		}
		return nil
	}

	if isSixelCapable() {
		if err := sendSixel(blob, format, size); err != nil {
			if hasChafa() {
				if err2 := sendChafa(blob, format, size); err2 == nil {
					return nil
				}
			}
			return fmt.Errorf("previewterm: sixel preview failed: %w", err)
		}
		return nil
	}

	if hasChafa() {
		if err := sendChafa(blob, format, size); err == nil {
			return nil
		}
	}
	return fmt.Errorf("previewterm: no preview protocol matched")
}

func sendKitty(data []byte, format string, size Size) error {
	if len(data) == 0 {
		return fmt.Errorf("previewterm: no data")
	}
	enc := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096

	fTok := ""
	if strings.HasPrefix(strings.ToLower(format), "png") || strings.HasPrefix(strings.ToLower(format), "j") {
		fTok = "f=100,"
	}

	total := len(enc)
	first := true
	for pos := 0; pos < total; pos += chunkSize {
		end := pos + chunkSize
		if end > total {
			end = total
		}
		chunk := enc[pos:end]
		last := end == total
		mVal := "0"
		if !last {
			mVal = "1"
		}

		var seq string
		if first {
			seq = fmt.Sprintf("\x1b_Ga=T,%st=d,q=2,c=%d,r=%d,m=%s;", fTok, size.Cols, size.Rows, mVal) + chunk + "\x1b\\"
			first = false
		} else {
			seq = "\x1b_G" + "m=" + mVal + ";" + chunk + "\x1b\\"
		}
		if _, err := os.Stdout.Write([]byte(seq)); err != nil {
			return err
		}
	}

	for i := 0; i < postImageNewlines(size.Rows); i++ {
		fmt.Println()
	}
	return nil
}

func sendInline(data []byte, format string, size Size) error {
	if len(data) == 0 {
		return fmt.Errorf("previewterm: no data")
	}
	enc := base64.StdEncoding.EncodeToString(data)
	name := "preview.png"
	if strings.HasPrefix(strings.ToLower(format), "j") {
		name = "preview.jpg"
	}
	meta := fmt.Sprintf("size=%d;", len(data))
	if size.PixelWidth > 0 && size.PixelHeight > 0 {
		meta += fmt.Sprintf("width=%dpx;height=%dpx;", size.PixelWidth, size.PixelHeight)
	}
	seq := "\x1b]1337;File=name=" + name + ";inline=1;" + meta + ":" + enc + "\a"
	_, err := os.Stdout.Write([]byte(seq))

	for i := 0; i < postImageNewlines(0); i++ {
		fmt.Println()
	}
	return err
}

func sendSixel(data []byte, format string, size Size) error {
	if len(data) == 0 {
		return fmt.Errorf("previewterm: no data")
	}

	cmd := exec.Command("img2sixel", "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err == nil {
		for i := 0; i < postImageNewlines(0); i++ {
			fmt.Println()
		}
		return nil
	}

	if err := sendChafa(data, format, size); err == nil {
		return nil
	}

	enc := base64.StdEncoding.EncodeToString(data)
	name := "preview.png"
	if strings.HasPrefix(strings.ToLower(format), "j") {
		name = "preview.jpg"
	}
	seq := "\x1b]1337;File=name=" + name + ";inline=1;size=" + fmt.Sprintf("%d", len(data)) + ":" + enc + "\a"
	_, err := os.Stdout.Write([]byte(seq))
	for i := 0; i < postImageNewlines(0); i++ {
		fmt.Println()
	}
	return err
}

func sendChafa(data []byte, format string, size Size) error {
	if len(data) == 0 {
		return fmt.Errorf("previewterm: no data")
	}
	if os.Getenv("SGCREATE_NO_CHAFA") == "1" {
		return fmt.Errorf("previewterm: chafa disabled via SGCREATE_NO_CHAFA=1")
	}
	if _, err := exec.LookPath("chafa"); err != nil {
		return fmt.Errorf("previewterm: chafa not found in PATH: %w", err)
	}

	chafaSize := fmt.Sprintf("%dx%d", size.Cols, size.Rows)
	args := []string{"--fill=block", "--symbols=block", "-s", chafaSize, "-"}

	cmd := exec.Command("chafa", args...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("previewterm: chafa failed: %w", err)
	}

	for i := 0; i < postImageNewlines(size.Rows); i++ {
		fmt.Println()
	}
	return nil
}
