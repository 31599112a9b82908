// Package textutil sanitizes text for use in file names.
package textutil
