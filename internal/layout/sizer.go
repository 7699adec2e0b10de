package layout

import (
	"github.com/jmylchreest/poptip/internal/model"
)

// Horizontal margins subtracted from the container width when a configured
// max width does not fit.
const (
	CompactMargin = 10
	RegularMargin = 20
)

// Measurer returns the bounding box of text laid out at most maxWidth wide.
type Measurer interface {
	MeasureText(text string, font model.Font, maxWidth float64, mode model.LineBreakMode, align model.Alignment) model.Size
}

// MeasurerFunc adapts a plain function to Measurer.
type MeasurerFunc func(text string, font model.Font, maxWidth float64, mode model.LineBreakMode, align model.Alignment) model.Size

// MeasureText calls f.
func (f MeasurerFunc) MeasureText(text string, font model.Font, maxWidth float64, mode model.LineBreakMode, align model.Alignment) model.Size {
	return f(text, font, maxWidth, mode, align)
}

// RectWidth returns the width text is laid out at inside a container.
// A configured maxWidth (> 0) is used when it is narrower than the container
// less the device margin; otherwise the container less the margin is used.
// Without a configured maxWidth compact displays get two thirds of the
// container and regular displays one third.
func RectWidth(containerWidth, maxWidth float64, device model.DeviceClass) float64 {
	margin := float64(CompactMargin)
	if device == model.DeviceRegular {
		margin = RegularMargin
	}

	if maxWidth > 0 {
		if maxWidth < containerWidth-margin {
			return maxWidth
		}
		return containerWidth - margin
	}

	if device == model.DeviceRegular {
		return containerWidth / 3
	}
	return containerWidth * 2 / 3
}

// SizeRequest is the input to Measure.
type SizeRequest struct {
	Content        model.Content
	CustomSize     *model.Size // frame size of embedded custom content, nil when absent
	Style          model.Style
	ContainerWidth float64
	Device         model.DeviceClass
}

// Sizing is the output of Measure.
type Sizing struct {
	RectWidth   float64    `json:"rect_width" yaml:"rect_width"`
	TitleSize   model.Size `json:"title_size" yaml:"title_size"`
	ContentSize model.Size `json:"content_size" yaml:"content_size"`
	BubbleSize  model.Size `json:"bubble_size" yaml:"bubble_size"`
}

// Measure computes the content and bubble size for a request.
//
// The message is measured word-wrapped at RectWidth; custom content replaces
// the message-derived size with its own frame size. A title is measured
// clipped and stacked above, adding its height. The bubble adds
// 2×CornerRadius in both dimensions.
func Measure(m Measurer, req SizeRequest) Sizing {
	style := req.Style
	s := Sizing{
		RectWidth: RectWidth(req.ContainerWidth, style.MaxWidth, req.Device),
	}

	var content model.Size
	if req.Content.HasMessage() {
		content = m.MeasureText(req.Content.Message, style.TextFont, s.RectWidth, model.BreakWordWrap, style.TextAlignment)
	}
	if req.CustomSize != nil {
		content = *req.CustomSize
	}
	if req.Content.HasTitle() {
		s.TitleSize = m.MeasureText(req.Content.Title, style.TitleFont, s.RectWidth, model.BreakClip, style.TitleAlignment)
		content.Height += s.TitleSize.Height
	}

	s.ContentSize = content
	s.BubbleSize = model.Size{
		Width:  content.Width + style.CornerRadius*2,
		Height: content.Height + style.CornerRadius*2,
	}
	return s
}
