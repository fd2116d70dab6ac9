// Package local scores text against the taxonomy with an embedding model
// served by a local Ollama runtime.
//
// The adapter loads lazily: the first Classify call picks the first candidate
// model that is installed and produces embeddings, and that choice (or the
// failure to find any) is kept for the adapter's lifetime. Each label is
// scored independently by comparing the text with the label's hypothesis
// sentence, so several labels may score high at once.
package local
