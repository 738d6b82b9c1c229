package convertflow

// progress forwards percentages to a caller callback, dropping any value
// lower than one already reported and clamping to [0,100]. Transforms that
// delegate to the fallback mid-way would otherwise move the bar backwards.
type progress struct {
	fn   ProgressFunc
	last int
}

func newProgress(fn ProgressFunc) *progress {
	return &progress{fn: fn, last: -1}
}

func (p *progress) report(percent int) {
	if p == nil || p.fn == nil {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if percent < p.last {
		return
	}
	p.last = percent
	p.fn(percent)
}

// fraction reports round(done/total*scale).
func (p *progress) fraction(done, total, scale int) {
	if total <= 0 {
		return
	}
	p.report((done*scale*2 + total) / (total * 2))
}
