package main

import (
	"bufio"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/preview"
)

// Run executes the watch command. Each non-empty line of stdin starts a new
// preview and supersedes the previous one, so only the preview of the most
// recent line is printed.
func (c *WatchCmd) Run(deps *Dependencies) error {
	latest := preview.NewLatest(deps.Previewer)
	opts := c.ExtractOptions()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex // serializes output
		current atomic.Uint64
	)

	scanner := bufio.NewScanner(deps.Stdin)
	for scanner.Scan() {
		url := strings.TrimSpace(scanner.Text())
		if url == "" {
			continue
		}

		gen := current.Add(1)
		wg.Add(1)
		latest.Go(deps.Ctx, url, opts, func(result *unfurl.Result, err error) {
			defer wg.Done()
			if unfurl.ErrorCode(err) == unfurl.ECANCELED {
				return
			}

			mu.Lock()
			defer mu.Unlock()
			if gen != current.Load() {
				if result != nil && result.Response != nil {
					result.Response.Body.Close()
				}
				return
			}
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", url, errorMessage(err))
				return
			}
			if err := printResult(deps.Stdout, result, c.JSON); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			}
		})
	}
	wg.Wait()

	return scanner.Err()
}
