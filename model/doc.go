// Package model abstracts generative model providers behind a single-shot
// generation interface. The synthesis agent depends only on model.Model, so
// providers (OpenAI, Anthropic, mocks) are interchangeable at registration
// time.
package model
