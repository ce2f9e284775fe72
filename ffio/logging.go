// Copyright 2024 The Gopme Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ffio

import (
	"log"
	"os"

	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/gosl/utl"
)

var logFile *os.File

// InitLogFile opens dirout/fnamekey_p<rank>.log and connects the standard
// logger to it, mirroring gofem's per-process log file so a run under
// gosl/mpi gets one log per rank instead of interleaved output.
func InitLogFile(dirout, fnamekey string) (err error) {
	var rank int
	if mpi.IsOn() {
		rank = mpi.Rank()
	}
	logFile, err = os.Create(utl.Sf("%s/%s_p%d.log", dirout, fnamekey, rank))
	if err != nil {
		return
	}
	log.SetOutput(logFile)
	return
}

// FlushLog closes the log file.
func FlushLog() {
	if logFile != nil {
		logFile.Close()
	}
}

// LogErr logs a non-nil error with msg and reports whether the caller
// should stop.
func LogErr(err error, msg string) (stop bool) {
	if err != nil {
		log.Printf("ERROR: %s : %v", msg, err)
		return true
	}
	return false
}

// LogErrCond logs a formatted error message when condition is true and
// reports whether the caller should stop.
func LogErrCond(condition bool, msg string, prm ...interface{}) (stop bool) {
	if condition {
		log.Printf("ERROR: "+msg, prm...)
		return true
	}
	return false
}
