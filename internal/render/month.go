package render

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"
	"time"

	"github.com/fogleman/gg"
	"github.com/pcamargo/slotbook/internal/model"
	"golang.org/x/image/font/basicfont"
)

const (
	cellWidth    = 96
	cellHeight   = 72
	titleHeight  = 48
	headerHeight = 32
	cellPadding  = 4
	cellRadius   = 6.0
	gridCols     = 7
)

var (
	bgColor         = color.RGBA{245, 246, 248, 255}
	titleColor      = color.RGBA{40, 44, 52, 255}
	headerColor     = color.RGBA{80, 85, 90, 220}
	dayFreeColor    = color.RGBA{133, 193, 85, 220}
	dayBlockedColor = color.RGBA{220, 220, 220, 255}
	dayTextColor    = color.RGBA{20, 24, 28, 230}
	dayMutedColor   = color.RGBA{150, 150, 150, 255}
)

var weekdayLabels = [gridCols]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// MonthPNG renders the month grid as a PNG: a header row of weekday
// labels and one cell per day, selectable days green and disabled days
// gray.
func MonthPNG(year int, month time.Month, weeks []model.CalendarWeek) ([]byte, error) {
	width := gridCols * cellWidth
	height := titleHeight + headerHeight + len(weeks)*cellHeight

	dc := gg.NewContext(width, height)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(bgColor)
	dc.Clear()

	dc.SetColor(titleColor)
	dc.DrawStringAnchored(fmt.Sprintf("%s %d", month, year), float64(width)/2, titleHeight/2, 0.5, 0.5)

	dc.SetColor(headerColor)
	for i, label := range weekdayLabels {
		x := float64(i*cellWidth) + cellWidth/2
		dc.DrawStringAnchored(label, x, titleHeight+headerHeight/2, 0.5, 0.5)
	}

	for row, week := range weeks {
		for col, day := range week.Days {
			x := float64(col * cellWidth)
			y := float64(titleHeight + headerHeight + row*cellHeight)

			fill, text := dayFreeColor, dayTextColor
			if day.Disabled {
				fill, text = dayBlockedColor, dayMutedColor
			}

			dc.SetColor(fill)
			dc.DrawRoundedRectangle(x+cellPadding, y+cellPadding, cellWidth-2*cellPadding, cellHeight-2*cellPadding, cellRadius)
			dc.Fill()

			dc.SetColor(text)
			dc.DrawStringAnchored(strconv.Itoa(day.Date.Day()), x+cellWidth/2, y+cellHeight/2, 0.5, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode month image: %w", err)
	}
	return buf.Bytes(), nil
}
