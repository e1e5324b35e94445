package commands

import "context"

// runner is what every pkg/runner type implements.
type runner interface {
	Do(ctx context.Context) error
}
