// Package servicedef contains the JSON configuration format for the harness.
package servicedef
