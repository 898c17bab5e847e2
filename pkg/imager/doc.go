// Package imager collects icon and logo components and exports them through
// the Figma images endpoint, hashing every file so that content changes show
// up in the changelog.
package imager
