package common

import (
	"bytes"
	"image/color"
	"sort"
	"strconv"
	"time"

	"github.com/Freeeeeet/tutoring_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutoring_bot/internal/model"
	"github.com/Freeeeeet/tutoring_bot/internal/schedule"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 70
	leftLabelsWidth  = 70
	legendWidth      = 130
	dayPaddingX      = 6
	minSlotHeight    = 14.0
	slotBorderRadius = 5.0
	shadowOffset     = 2.0
	totalDaysInWeek  = 7
	hourPaddingTop   = 1
	hourPaddingBot   = 1
	defaultMinHour   = 8
	defaultMaxHour   = 20
	maxLabelChars    = 24
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{60, 65, 70, 255}
	hourLabelColor   = color.RGBA{110, 115, 120, 220}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{255, 99, 71, 90}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{225, 225, 225, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}

	sessionActiveColor      = color.RGBA{133, 193, 85, 230}
	sessionCompleteColor    = color.RGBA{158, 158, 158, 210}
	sessionRescheduledColor = color.RGBA{255, 196, 87, 240}
	sessionDefaultColor     = color.RGBA{220, 220, 220, 200}
	sessionTextColor        = color.RGBA{20, 24, 28, 240}
	sessionShadowColor      = color.RGBA{0, 0, 0, 20}

	legendItemColor = color.RGBA{70, 74, 78, 230}
)

// hourRange содержит диапазон часов для отображения
type hourRange struct {
	start int
	end   int
	total int
}

// WeekImageOptions - параметры картинки недели
type WeekImageOptions struct {
	// Location - локация, в которой рисуются занятия
	Location *time.Location
	// Now - текущее время для подсветки дня и линии времени
	Now time.Time
}

// GenerateWeekImage рисует PNG с занятиями недели, содержащей day.
// Шрифт встроенный (basicfont), поэтому подписи только латиницей.
func GenerateWeekImage(day time.Time, sessions []*model.Session, opts WeekImageOptions) ([]byte, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.In(loc)

	weekStart, weekEnd := schedule.WeekWindow(day.In(loc))
	byDay := groupSessionsByDay(sessions, loc)
	hours := calculateHourRange(sessions, loc)

	dc := createCanvas()
	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	todayInWeek := !now.Before(weekStart) && !now.After(weekEnd)

	drawHeader(dc, weekStart, weekEnd, len(sessions))
	drawHourLabels(dc, hours, cellHeight)

	current := weekStart
	for dayIndex := 0; dayIndex < totalDaysInWeek; dayIndex++ {
		x := float64(leftLabelsWidth + dayIndex*dayWidth)
		y := float64(headerHeight)
		isToday := todayInWeek && sameDay(current, now)

		drawDayBackground(dc, x, y, dayWidth, dayHeight, dayIndex, isToday)
		drawDayHeader(dc, current, x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)
		for _, s := range byDay[current.Format("2006-01-02")] {
			drawSession(dc, s, loc, x, y, dayWidth, hours, cellHeight)
		}

		current = current.AddDate(0, 0, 1)
	}

	if todayInWeek {
		drawCurrentTimeLine(dc, now, hours, cellHeight, dayWidth)
	}
	drawLegend(dc, dayWidth)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func groupSessionsByDay(sessions []*model.Session, loc *time.Location) map[string][]*model.Session {
	byDay := make(map[string][]*model.Session)
	for _, s := range sessions {
		key := s.Date.In(loc).Format("2006-01-02")
		byDay[key] = append(byDay[key], s)
	}
	for _, list := range byDay {
		sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	}
	return byDay
}

// calculateHourRange определяет диапазон часов по занятиям недели
func calculateHourRange(sessions []*model.Session, loc *time.Location) hourRange {
	minHour, maxHour := 24, 0

	for _, s := range sessions {
		start, end := s.Date.In(loc), s.EndsAt.In(loc)
		startH := start.Hour()
		endH := end.Hour()
		if end.Minute() > 0 || !sameDay(start, end) {
			endH++
		}
		if !sameDay(start, end) {
			endH = 24
		}
		if startH < minHour {
			minHour = startH
		}
		if endH > maxHour {
			maxHour = endH
		}
	}

	if minHour == 24 {
		minHour, maxHour = defaultMinHour, defaultMaxHour
	}

	start := minHour - hourPaddingTop
	end := maxHour + hourPaddingBot
	if start < 0 {
		start = 0
	}
	if end > 24 {
		end = 24
	}

	return hourRange{start: start, end: end, total: end - start}
}

func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)
	return dc
}

func drawHeader(dc *gg.Context, start, end time.Time, count int) {
	title := formatting.FormatWeekRange(start, end) + "  |  " + formatting.Plural(count, "session")
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(imageWidth)/2, float64(headerHeight)/4, 0.5, 0.5)
}

func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	dc.SetColor(hourLabelColor)
	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		y := float64(headerHeight) + float64(hIdx)*cellHeight
		dc.DrawStringAnchored(formatHourLabel(hours.start+hIdx), float64(leftLabelsWidth)-8, y, 1, 0.5)
	}
}

func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	switch {
	case isToday:
		dc.SetColor(todayBgColor)
	case dayIndex%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

func drawDayHeader(dc *gg.Context, date time.Time, x, y float64, dayWidth int) {
	dc.SetColor(textColor)
	cx := x + float64(dayWidth)/2
	dc.DrawStringAnchored(date.Format("Mon"), cx, y-28, 0.5, 0.5)
	dc.DrawStringAnchored(date.Format("Jan 2"), cx, y-12, 0.5, 0.5)
}

func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)
	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		hy := y + float64(hIdx)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

func drawSession(dc *gg.Context, s *model.Session, loc *time.Location, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	start, end := s.Date.In(loc), s.EndsAt.In(loc)
	startHour := float64(start.Hour()) + float64(start.Minute())/60.0
	endHour := float64(end.Hour()) + float64(end.Minute())/60.0
	if !sameDay(start, end) {
		endHour = 24
	}

	slotY := y + (startHour-float64(hours.start))*cellHeight
	slotHeight := (endHour - startHour) * cellHeight
	if slotHeight < minSlotHeight {
		slotHeight = minSlotHeight
	}
	slotX := x + dayPaddingX
	slotWidth := float64(dayWidth) - dayPaddingX*2
	fill := sessionColor(s.Status)

	dc.SetColor(sessionShadowColor)
	dc.DrawRoundedRectangle(slotX+shadowOffset, slotY+1+shadowOffset, slotWidth, slotHeight-2, slotBorderRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(slotX, slotY+1, slotWidth, slotHeight-2, slotBorderRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(slotX, slotY+1, slotWidth, slotHeight-2, slotBorderRadius)
	dc.Stroke()

	dc.SetColor(sessionTextColor)
	txtX := slotX + 5
	dc.DrawStringAnchored(formatting.FormatTimeRange(start, end), txtX, slotY+12, 0, 0)

	lines := []string{formatting.ProfileName(s.Student), formatting.ProfileName(s.Tutor)}
	for i, line := range lines {
		lineY := slotY + 26 + float64(i)*14
		if lineY > slotY+slotHeight-2 {
			break
		}
		dc.DrawStringAnchored(truncate(line, maxLabelChars), txtX, lineY, 0, 0)
	}
}

func sessionColor(status model.SessionStatus) color.RGBA {
	switch status {
	case model.SessionStatusActive:
		return sessionActiveColor
	case model.SessionStatusComplete:
		return sessionCompleteColor
	case model.SessionStatusRescheduled:
		return sessionRescheduledColor
	default:
		return sessionDefaultColor
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func drawCurrentTimeLine(dc *gg.Context, now time.Time, hours hourRange, cellHeight float64, dayWidth int) {
	currentHour := float64(now.Hour()) + float64(now.Minute())/60.0
	if currentHour < float64(hours.start) || currentHour > float64(hours.end) {
		return
	}

	y := float64(headerHeight) + (currentHour-float64(hours.start))*cellHeight
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2.0)
	dc.DrawLine(float64(leftLabelsWidth), y, float64(leftLabelsWidth+totalDaysInWeek*dayWidth), y)
	dc.Stroke()
}

func drawLegend(dc *gg.Context, dayWidth int) {
	items := []struct {
		label string
		clr   color.Color
	}{
		{formatting.GetSessionStatusDisplay(model.SessionStatusActive).Text, sessionActiveColor},
		{formatting.GetSessionStatusDisplay(model.SessionStatusRescheduled).Text, sessionRescheduledColor},
		{formatting.GetSessionStatusDisplay(model.SessionStatusComplete).Text, sessionCompleteColor},
	}

	boxW, boxH := 18.0, 12.0
	x := float64(leftLabelsWidth + totalDaysInWeek*dayWidth + 12)
	y := float64(imageHeight) - 90.0

	for _, item := range items {
		dc.SetColor(item.clr)
		dc.DrawRoundedRectangle(x, y, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.label, x+boxW+6, y+boxH/2, 0, 0.5)
		y += boxH + 12
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

func formatHourLabel(h int) string {
	if h < 10 {
		return "0" + strconv.Itoa(h) + ":00"
	}
	return strconv.Itoa(h) + ":00"
}
