package tuner

import (
	"context"
	"errors"

	"github.com/ChizhovVadim/CounterTexel/internal/domain"
	"github.com/ChizhovVadim/CounterTexel/pkg/eval"
	"golang.org/x/sync/errgroup"
)

type IDatasetProvider interface {
	Load(ctx context.Context, dataset chan<- domain.DatasetItem) error
}

// LoadDataset reads and parses every record. Any malformed record fails the
// whole load.
func LoadDataset(
	ctx context.Context,
	datasetProvider IDatasetProvider,
) ([]eval.Position, error) {

	g, ctx := errgroup.WithContext(ctx)

	var dataset = make(chan domain.DatasetItem, 128)

	g.Go(func() error {
		defer close(dataset)
		return datasetProvider.Load(ctx, dataset)
	})

	var result []eval.Position

	g.Go(func() error {
		var positions, err = processDataset(ctx, dataset)
		if err != nil {
			return err
		}
		result = positions
		return nil
	})

	var err = g.Wait()
	if err != nil {
		return nil, err
	}

	return result, nil
}

func processDataset(
	ctx context.Context,
	dataset <-chan domain.DatasetItem,
) ([]eval.Position, error) {
	var result []eval.Position
	for item := range dataset {
		var pos, err = eval.ParsePosition(item.Record)
		if err != nil {
			var parseErr *eval.ParseError
			if errors.As(err, &parseErr) {
				parseErr.Line = item.Line
			}
			return nil, err
		}
		result = append(result, pos)
	}
	return result, ctx.Err()
}
