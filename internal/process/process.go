// Package process detects running game processes so destructive
// operations can refuse to touch files the game has open. The game is
// a Windows title; off Windows these checks report nothing running.
package process
