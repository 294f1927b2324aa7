package main

import (
	"fmt"

	"github.com/fwojciec/unfurl/preview"
)

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	batch := &preview.Batch{
		Previewer:   deps.Previewer,
		Concurrency: c.Concurrency,
	}

	outcomes, err := batch.PreviewAll(deps.Ctx, c.URLs, c.ExtractOptions(), nil)
	if err != nil {
		return err
	}

	var failed, printed int
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", o.URL, errorMessage(o.Err))
			continue
		}
		if printed > 0 && !c.JSON {
			fmt.Fprintln(deps.Stdout)
		}
		if err := printResult(deps.Stdout, o.Result, c.JSON); err != nil {
			return err
		}
		printed++
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d previews failed", failed, len(outcomes))
	}
	return nil
}
