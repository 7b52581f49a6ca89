package extraction

// Reporter receives a callback after each extraction pass.
type Reporter interface {
	// OnPassComplete is called once per unit kind, in run order.
	OnPassComplete(kind UnitKind, count int)
}

// NoOpReporter discards all progress events.
type NoOpReporter struct{}

func (NoOpReporter) OnPassComplete(kind UnitKind, count int) {}
