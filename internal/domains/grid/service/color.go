package service

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	channelMin       = 20
	channelSpan      = 201 // channels stay within [20, 220]
	maxColorAttempts = 64
)

// colorPicker hands out distinct colours to the bookings of one period: the palette
// first, then generated RGB values. Generated colours depend only on the period and
// the booking id, so projecting the same bookings twice yields the same colours.
type colorPicker struct {
	palette []string
	next    int
	period  uint64
	used    map[string]struct{}
}

func newColorPicker(palette []string, period time.Time) *colorPicker {
	return &colorPicker{
		palette: palette,
		period:  uint64(period.Year()*100 + int(period.Month())), //nolint:gosec
		used:    map[string]struct{}{},
	}
}

func (p *colorPicker) pick(bookingID int64) string {
	for p.next < len(p.palette) {
		color := p.palette[p.next]
		p.next++

		if _, ok := p.used[color]; !ok {
			p.used[color] = struct{}{}

			return color
		}
	}

	rng := rand.New(rand.NewPCG(p.period, uint64(bookingID))) //nolint:gosec

	var color string

	for range maxColorAttempts {
		color = fmt.Sprintf("#%02x%02x%02x",
			channelMin+rng.IntN(channelSpan),
			channelMin+rng.IntN(channelSpan),
			channelMin+rng.IntN(channelSpan),
		)

		if _, ok := p.used[color]; !ok {
			break
		}
	}

	p.used[color] = struct{}{}

	return color
}
