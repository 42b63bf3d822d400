// Package app assembles protobench's fx application from the individual
// package modules.
//
//	fx.New(app.Server(cfg)).Run()
//
// Core leaves out the HTTP server, for one-shot commands that only need the
// probe service.
package app
