package main

// _version of trace2html.
//
// Overridden at release time with:
//
//	go build -ldflags "-X main._version=..."
var _version = "dev"
