// Package cli implements the volinsight command line.
package cli
