// Package engine runs the scoring pipeline for the service: it reads the
// dataset from an injected store.Store, scores it with the current weights and
// publishes an immutable Snapshot for the API. Weight changes from the API,
// the config watcher or hermes all go through SetWeights, which validates,
// rescores and emits events.
package engine
