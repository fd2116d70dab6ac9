// Package remote provides the client for a hosted zero-shot classification
// endpoint (Hugging Face Inference API compatible). It handles model cold
// starts, rate limiting and transient failures with a bounded retry policy.
package remote
