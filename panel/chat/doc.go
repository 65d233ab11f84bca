// Package chat implements the multimodal chat panel. Each model keeps its own append only log; the backend reads the
// prompt and prior turns from the client side backend-model-store and pushes the reply text back into it.
package chat
