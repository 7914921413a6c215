package metrics

const (
	LabelContext = "context"
)
