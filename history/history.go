// Package history assembles the cross-variant record timeline shown on
// the history screen.
package history

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/crodriguezm/sgsst/log"
	"github.com/crodriguezm/sgsst/model"
)

// Source is the record store slice the aggregator needs.
type Source interface {
	SelectAll(ctx context.Context, v model.Variant) ([]model.Inspection, error)
}

// Entry is one inspection annotated for list display.
type Entry struct {
	model.Inspection
}

// MarshalJSON adds the display fields the history list renders without
// touching the stored record shape.
func (e Entry) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(e.Inspection)
	if err != nil {
		return nil, err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	doc["_module"], _ = json.Marshal(e.Variant)
	doc["display_name"], _ = json.Marshal(e.DisplayName())
	doc["display_date"], _ = json.Marshal(e.DisplayDate())
	return json.Marshal(doc)
}

// Fetch collects records across variants, newest first. With no filter it
// queries all variants concurrently and keeps going when one collection
// fails, logging and omitting it. With a filter set, a failure is the
// caller's problem.
func Fetch(ctx context.Context, src Source, filter *model.Variant) ([]Entry, error) {
	if filter != nil {
		records, err := src.SelectAll(ctx, *filter)
		if err != nil {
			return nil, err
		}
		return annotate(records), nil
	}

	variants := model.Variants()
	results := make([][]model.Inspection, len(variants))

	var wg sync.WaitGroup
	for i, v := range variants {
		wg.Add(1)
		go func(i int, v model.Variant) {
			defer wg.Done()
			records, err := src.SelectAll(ctx, v)
			if err != nil {
				log.Warnf("history.fetch.%s: %s", v, err)
				return
			}
			results[i] = records
		}(i, v)
	}
	wg.Wait()

	entries := []Entry{}
	for _, records := range results {
		entries = append(entries, annotate(records)...)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func annotate(records []model.Inspection) []Entry {
	entries := make([]Entry, len(records))
	for i, ins := range records {
		entries[i] = Entry{ins}
	}
	return entries
}
