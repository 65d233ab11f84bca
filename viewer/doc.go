// Package viewer defines the contract feature panels use to hand results to a volumetric viewer.
//
// Memory is an in-process implementation used by the command line tool and tests; Exporter writes
// what it receives to local or cloud storage.
package viewer
