// Package config loads volinsight YAML configuration.
package config
