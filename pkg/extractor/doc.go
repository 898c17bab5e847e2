// Package extractor reads the published color, text and effect styles of a
// Figma file into flat design token arrays.
package extractor
