// Package textutil derives display names and safe file names for tracks.
package textutil
