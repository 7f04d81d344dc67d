package main

import (
	"github.com/sirupsen/logrus"

	"github.com/strandscfd/strands2d/internal/output"
)

// tlogHook relays the pseudo-time driver's structured "pseudo-time
// step" log entries into a TlogWriter, tracking each stage's first
// residual norm so it can report the ratio TlogWriter.Step expects.
type tlogHook struct {
	w         *output.TlogWriter
	firstNorm map[string]float64
}

func newTlogHook(w *output.TlogWriter) *tlogHook {
	return &tlogHook{w: w, firstNorm: make(map[string]float64)}
}

func (h *tlogHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.InfoLevel}
}

func (h *tlogHook) Fire(entry *logrus.Entry) error {
	if entry.Message != "pseudo-time step" {
		return nil
	}
	stage, _ := entry.Data["stage"].(string)
	step, _ := entry.Data["step"].(int)
	cfl, _ := entry.Data["cfl"].(float64)
	residual, _ := entry.Data["residual"].(float64)

	first, ok := h.firstNorm[stage]
	if !ok || step == 0 {
		h.firstNorm[stage] = residual
		first = residual
	}
	ratio := 1.0
	if first > 0 {
		ratio = residual / first
	}
	h.w.Step(step, cfl, ratio)
	return nil
}
