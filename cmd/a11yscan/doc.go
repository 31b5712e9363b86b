// Package a11yscan implements the CLI commands. The binary entry point is
// the repository root main package:
//
//	package main
//
//	func main() { a11yscan.Execute() }
package a11yscan
