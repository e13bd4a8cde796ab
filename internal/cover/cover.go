package cover

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/yockii/wx_publisher/internal/constant"
	"github.com/yockii/wx_publisher/pkg/theme"
)

// 公众号头条封面尺寸 2.35:1
const (
	Width  = 900
	Height = 383
)

// Normalize 居中裁剪到封面比例并缩放为 900x383 的 PNG
func Normalize(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("解码图片失败: %v: %w", err, constant.ErrInvalidParams)
	}
	dst := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, centerCrop(src.Bounds()), draw.Src, nil)
	return encode(dst)
}

func centerCrop(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return b
	}
	// w/h 与 Width/Height 比较
	if w*Height > h*Width {
		newW := h * Width / Height
		left := b.Min.X + (w-newW)/2
		return image.Rect(left, b.Min.Y, left+newW, b.Max.Y)
	}
	newH := w * Height / Width
	top := b.Min.Y + (h-newH)/2
	return image.Rect(b.Min.X, top, b.Max.X, top+newH)
}

// Fallback 以主题主色生成渐变封面
func Fallback(th theme.Theme) ([]byte, error) {
	r, g, b, ok := theme.RGB(th.PrimaryColor)
	if !ok {
		r, g, b, _ = theme.RGB(theme.Default().PrimaryColor)
	}
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	for y := 0; y < Height; y++ {
		ratio := float64(y) / Height
		c := color.RGBA{
			R: blend(r, ratio, 30),
			G: blend(g, ratio, 30),
			B: blend(b, ratio, 60),
			A: 255,
		}
		for x := 0; x < Width; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	// 装饰圆
	light := color.RGBA{R: lighten(r), G: lighten(g), B: lighten(b), A: 255}
	for i := 0; i < 5; i++ {
		fillCircle(img, 100+i*180, 50+(i%2)*100, 30+i*10, light)
	}
	return encode(img)
}

func blend(v uint8, ratio, target float64) uint8 {
	f := float64(v)*(1-ratio*0.5) + target*ratio
	if f > 255 {
		f = 255
	}
	return uint8(f)
}

func lighten(v uint8) uint8 {
	if v > 205 {
		return 255
	}
	return v + 50
}

func fillCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	bounds := img.Bounds()
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy > radius*radius || !image.Pt(x, y).In(bounds) {
				continue
			}
			img.SetRGBA(x, y, c)
		}
	}
}

func encode(img image.Image) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
