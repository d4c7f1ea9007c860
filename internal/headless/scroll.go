package headless

import (
	"context"

	waterfall "github.com/grindlemire/go-waterfall"
)

// Step records the state of the layout after one scroll position was laid out.
type Step struct {
	ScrollPosition  int
	Viewport        waterfall.Viewport
	Result          waterfall.Result
	Placed          int
	Rendered        int
	Visible         int
	ContainerHeight int
}

// Scroll lays out e at each position in turn.
func Scroll(ctx context.Context, e *waterfall.Engine, positions []int) ([]Step, error) {
	steps := make([]Step, 0, len(positions))
	for _, pos := range positions {
		e.SetScrollPosition(pos)
		res, err := e.Layout(ctx)
		if err != nil {
			return steps, err
		}
		steps = append(steps, snapshot(e, pos, res))
	}
	return steps, nil
}

// ScrollToEnd scrolls down one viewport at a time until every catalog item has
// a rect or the scroll position passes the bottom of the container. It returns
// one step per position visited.
func ScrollToEnd(ctx context.Context, e *waterfall.Engine, page int) ([]Step, error) {
	if page <= 0 {
		page = 1
	}
	var steps []Step
	for pos := 0; ; pos += page {
		e.SetScrollPosition(pos)
		res, err := e.Layout(ctx)
		if err != nil {
			return steps, err
		}
		step := snapshot(e, pos, res)
		steps = append(steps, step)

		if step.Placed == len(e.Catalog()) || pos > e.ContainerHeight() || res.Exhausted {
			return steps, nil
		}
	}
}

func snapshot(e *waterfall.Engine, pos int, res waterfall.Result) Step {
	s := Step{
		ScrollPosition:  pos,
		Viewport:        e.Viewport(),
		Result:          res,
		ContainerHeight: e.ContainerHeight(),
	}
	for _, item := range e.Catalog() {
		if _, ok := e.Rect(item.ID); ok {
			s.Placed++
		}
	}
	for _, b := range e.Rendered() {
		s.Rendered++
		if b.Visible {
			s.Visible++
		}
	}
	return s
}
