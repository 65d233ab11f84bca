// Package generate implements the synthetic CT generation panel.
package generate
