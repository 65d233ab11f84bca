// Package app assembles the in-memory viewer, the feature panels and their backend clients from configuration.
package app
