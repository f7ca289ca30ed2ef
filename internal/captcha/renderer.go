package captcha

import (
	"image/color"

	"github.com/mojocn/base64Captcha"
)

// codeAlphabet excludes characters that render ambiguously (0Oo1Il).
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	imageWidth  = 140
	imageHeight = 52
	codeLength  = 4
	noiseCount  = 2
)

// Renderer produces a human-solvable puzzle: the expected code and its
// rendered image as a base64 data URI.
type Renderer interface {
	Render() (code string, image string, err error)
}

type stringRenderer struct {
	driver *base64Captcha.DriverString
}

func NewRenderer() Renderer {
	return &stringRenderer{
		driver: base64Captcha.NewDriverString(
			imageHeight,
			imageWidth,
			noiseCount,
			base64Captcha.OptionShowHollowLine,
			codeLength,
			codeAlphabet,
			&color.RGBA{R: 0xf8, G: 0xf9, B: 0xfb, A: 0xff},
			nil,
			nil,
		),
	}
}

func (r *stringRenderer) Render() (string, string, error) {
	_, content, answer := r.driver.GenerateIdQuestionAnswer()
	item, err := r.driver.DrawCaptcha(content)
	if err != nil {
		return "", "", err
	}
	return answer, item.EncodeB64string(), nil
}
