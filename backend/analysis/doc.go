// Package analysis serves multimodal image analysis: it pulls the prompt, history and image from the caller, extracts
// the requested slice and dispatches to the selected model.
package analysis
