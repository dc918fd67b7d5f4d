// Package vision wraps the OpenRouter chat-completions API for photo
// classification.
//
// Each call sends one fixed instruction plus one or more base64 data-URI
// images and requests a JSON-shaped reply. The prompt text is a contract
// with the remote model: the requested schema must match what the decoder
// expects, so prompts live in prompts.go and are not assembled dynamically.
//
// Replies are tolerated in the usual degraded forms models produce: markdown
// code fences around the JSON, prose around the object, tool-call argument
// payloads instead of content. Missing verdict fields default rather than
// fail so a sloppy reply never aborts a batch.
//
// Transient failures (408/429/5xx, timeouts, empty content) retry with
// exponential backoff honoring Retry-After; everything else fails fast. An
// optional rate limiter gates each attempt to respect the provider's caps.
package vision
