package coords

import (
	"trimline/internal/edition"
	"trimline/internal/interval"
)

// EditedView maps between the raw timeline and the edited timeline in which
// CUT regions of model no longer exist. MUTE regions keep their place.
type EditedView struct {
	Mapper Mapper
	Model  *edition.Model
}

// EditedFrame returns where raw lands on the edited timeline. A frame inside
// a CUT region lands where the region was removed.
func (v EditedView) EditedFrame(raw int64) int64 {
	return v.Model.ImposePoint(raw)
}

// EditedRange compacts a raw frame range. Cut frames inside it are dropped,
// so the result may be shorter or empty.
func (v EditedView) EditedRange(raw interval.Interval[int64]) interval.Interval[int64] {
	return v.Model.Impose(raw)
}

// RawFrame maps an edited-timeline frame back to the raw frame that plays
// there.
func (v EditedView) RawFrame(edited int64) int64 {
	return v.Model.OverlayPoint(edited)
}

// RawRange maps an edited-timeline range back to raw frames.
func (v EditedView) RawRange(edited interval.Interval[int64]) interval.Interval[int64] {
	return v.Model.Overlay(edited)
}

// EditedPixelRange returns the pixel columns a raw frame range occupies on
// the edited waveform.
func (v EditedView) EditedPixelRange(raw interval.Interval[int64]) interval.Interval[int64] {
	return v.Mapper.PixelRange(v.EditedRange(raw))
}

// RawFrameAtPixel returns the raw frame under an edited-waveform pixel.
func (v EditedView) RawFrameAtPixel(pixel int64) int64 {
	return v.RawFrame(v.Mapper.FrameOf(pixel))
}

// EditedMillis returns the edited-timeline millisecond position of raw.
func (v EditedView) EditedMillis(raw int64) int64 {
	return v.Mapper.MillisOf(v.EditedFrame(raw))
}
