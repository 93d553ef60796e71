//go:build !gui

package main

import "errors"

func runGUI(_ *practiceSession) error {
	return errors.New("wps: built without GUI support (rebuild with -tags gui)")
}
