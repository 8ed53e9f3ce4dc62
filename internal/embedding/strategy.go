package embedding

import "context"

// Strategy converts texts into fixed-dimensional vectors. A strategy's
// dimension is fixed for its lifetime; all vectors it produces share it.
type Strategy interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
