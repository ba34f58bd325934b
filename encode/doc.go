// Package encode renders a resolved ir.Value tree as canonical JSON, with
// optional ANSI syntax coloring for terminal output.
//
// # Usage
//
//	err := encode.Encode(root, os.Stdout)
//	err := encode.Encode(root, os.Stdout, encode.WithColor(encode.NewColors()))
package encode
