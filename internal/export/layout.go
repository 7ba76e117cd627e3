package export

// pageState is the position of the layout cursor relative to the page bottom
type pageState int

const (
	onPage pageState = iota
	atPageBottom
)

// layout tracks the vertical cursor of a paginated document and decides
// where pages break. It knows nothing about drawing: starting a page is
// delegated to addPage.
type layout struct {
	pageHeight float64
	margin     float64
	footerBand float64

	y       float64
	pages   int
	state   pageState
	addPage func()
}

func newLayout(pageHeight, margin, footerBand float64, addPage func()) *layout {
	l := &layout{
		pageHeight: pageHeight,
		margin:     margin,
		footerBand: footerBand,
		addPage:    addPage,
	}
	l.newPage()
	return l
}

// bottom is the lowest y content may reach on a page
func (l *layout) bottom() float64 {
	return l.pageHeight - l.footerBand - l.margin
}

// ensure makes room for a block of height h, breaking the page when the
// block would cross the bottom. It reports whether a new page was started.
// A block taller than a whole page is placed at the top of a fresh page and
// left to overflow.
func (l *layout) ensure(h float64) bool {
	if l.y+h <= l.bottom() {
		return false
	}
	if l.y == l.margin {
		// Already at the top: breaking again would not help
		return false
	}
	l.state = atPageBottom
	l.newPage()
	return true
}

// advance moves the cursor down by h
func (l *layout) advance(h float64) {
	l.y += h
}

func (l *layout) newPage() {
	if l.addPage != nil {
		l.addPage()
	}
	l.pages++
	l.y = l.margin
	l.state = onPage
}
