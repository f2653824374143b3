package recorder

// NoopRecorder is a no-op implementation used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordTrends(_ []TrendSnapshot) error { return nil }
func (n *NoopRecorder) RecordAlert(_ *AlertEvent) error      { return nil }
func (n *NoopRecorder) Close() error                         { return nil }
