// Package dataset provides the input side of the scoring pipeline: a seeded
// synthetic generator and a YAML/JSON file loader. Both produce plain
// store.IndicatorRecord values that callers wrap in a store.MemoryStore.
package dataset
