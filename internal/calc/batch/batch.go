package batch

import (
	"errors"
	"fmt"

	"Hidro/internal/calc"
)

// MaxItems caps a single batch.
const MaxItems = 200

var ErrNoItems = errors.New("no items")

type Input struct {
	Items []calc.Request `json:"items"`
}

type Result struct {
	Results []calc.Response `json:"results"`
}

// Calculate evaluates every item in order. Incomplete or invalid items still
// produce a response; an unknown category aborts the whole batch.
func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, ErrNoItems
	}
	if len(in.Items) > MaxItems {
		return Result{}, fmt.Errorf("batch of %d items exceeds %d", len(in.Items), MaxItems)
	}
	out := Result{Results: make([]calc.Response, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := calc.Run(item)
		if err != nil {
			return Result{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, calc.NewResponse(res))
	}
	return out, nil
}
