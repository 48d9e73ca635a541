package main

import (
	"github.com/pcj/mobyprogress"
)

func writeLoadProgress(output mobyprogress.Output, current, total int) {
	output.WriteProgress(mobyprogress.Progress{
		ID:      "load",
		Action:  "loading compilation state",
		Current: int64(current),
		Total:   int64(total),
		Units:   "sources",
	})
}

func writeResolveProgress(output mobyprogress.Output, current, total int, lastUpdate bool) {
	output.WriteProgress(mobyprogress.Progress{
		ID:         "resolve",
		Action:     "resolving symbols",
		Current:    int64(current),
		Total:      int64(total),
		Units:      "symbols",
		LastUpdate: lastUpdate,
	})
}
