// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package gcs

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// status logs the progress of the stages of a build.
type status struct {
	stageName  string
	workCount  uint64
	doneCount  uint64
	step       uint64
	start      time.Time
	stageStart time.Time
	printer    *message.Printer
}

func newStatus() *status {
	return &status{start: time.Now(), printer: message.NewPrinter(language.English)}
}

func (s *status) Stage(stage string) {
	s.FinishStage()

	s.stageName = stage
	s.stageStart = time.Now()
	atomic.StoreUint64(&s.doneCount, 0)
	s.workCount = 0
	s.step = 0
	log.Debug().Msgf("%s starting...", stage)
}

func (s *status) StageWork(stage string, work uint64) {
	s.Stage(stage)
	s.workCount = work
	// Report about every 5%
	s.step = work / 20
}

func (s *status) printStatus(done uint64) {
	elapsed := time.Since(s.stageStart).Seconds()
	rate := float64(done)
	if elapsed > 0 {
		rate = float64(done) / elapsed
	}

	log.Info().Msgf(
		"%s: %s of %s, %.2f%%, %.0f/s",
		s.stageName,
		s.printer.Sprintf("%d", done),
		s.printer.Sprintf("%d", s.workCount),
		float64(done)/float64(s.workCount)*100,
		rate,
	)
}

func (s *status) AddWork(count uint64) {
	done := atomic.AddUint64(&s.doneCount, count)
	if s.step > 0 && done%s.step == 0 {
		s.printStatus(done)
	}
}

func (s *status) Incr() {
	s.AddWork(1)
}

func (s *status) FinishStage() {
	if s.stageName != "" {
		log.Info().Msgf("%s complete in %v", s.stageName, time.Since(s.stageStart))
	}
	s.stageName = ""
}

func (s *status) Done() {
	s.FinishStage()
	log.Info().Msgf("complete in %v", time.Since(s.start))
}
