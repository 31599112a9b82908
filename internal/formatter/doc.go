// Package formatter renders fetched transcripts for output.
//
// Formatters are looked up by name with New. The text, json, srt and webvtt
// formats mirror the common subtitle interchange formats; pretty renders a
// go-pretty table intended for terminals. Every formatter writes a single
// document for any number of transcripts.
package formatter
