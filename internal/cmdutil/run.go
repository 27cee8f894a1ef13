package cmdutil

import (
	"context"

	"detprod/internal/catalog"
	"detprod/internal/screen"
)

// RunStream runs the screening pool, applies a visitor, and streams results via send.
// It returns the number of kept outputs and the first error encountered.
func RunStream[T any](
	ctx context.Context,
	cfg screen.Config,
	compounds []catalog.Compound,
	visit func(screen.Row) (bool, T, error),
	send func(T) error,
	onErr func(catalog.Compound, error) error,
) (int, error) {
	total := 0
	err := screen.ForEachRow(ctx, cfg, compounds, func(r screen.Row) error {
		keep, out, vErr := visit(r)
		if vErr != nil {
			return vErr
		}
		if !keep {
			return nil
		}
		if err := send(out); err != nil {
			return err
		}
		total++
		return nil
	}, onErr)
	return total, err
}
