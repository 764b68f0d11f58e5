package query

import (
	"fmt"
	"sync"
	"time"
)

// ProgressTracker funnels stage lifecycle events from a pipeline run into a
// single callback.
type ProgressTracker struct {
	mu       sync.Mutex
	callback ProgressCallback
	total    int
	current  int
	stages   map[string]*stageProgress
}

type stageProgress struct {
	index     int
	estimated int64
	startTime time.Time
}

// NewProgressTracker creates a tracker reporting through callback. A nil
// callback discards all reports.
func NewProgressTracker(callback ProgressCallback, totalStages int) *ProgressTracker {
	if callback == nil {
		callback = NoOpProgressCallback
	}
	return &ProgressTracker{
		callback: callback,
		total:    totalStages,
		stages:   make(map[string]*stageProgress),
	}
}

// StartStage announces a stage with its estimated output row count
// (negative when unknown).
func (p *ProgressTracker) StartStage(name string, estimatedRows int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current++
	p.stages[name] = &stageProgress{
		index:     p.current,
		estimated: estimatedRows,
		startTime: time.Now(),
	}
	p.callback(name, 0, estimatedRows, fmt.Sprintf("Stage %d/%d: %s", p.current, p.total, name))
}

// UpdateStage reports row-level progress within a running stage. Reports for
// small inputs are suppressed since they would only be noise.
func (p *ProgressTracker) UpdateStage(name string, current int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	stage, ok := p.stages[name]
	if !ok || stage.estimated <= MinRowsForProgress {
		return
	}

	var rate float64
	if elapsed := time.Since(stage.startTime).Seconds(); elapsed > 0 {
		rate = float64(current) / elapsed
	}
	p.callback(name, current, stage.estimated,
		fmt.Sprintf("Stage %d/%d: %s (%d/%d rows, %.0f rows/sec)",
			stage.index, p.total, name, current, stage.estimated, rate))
}

// CompleteStage reports a stage's final row count and elapsed time.
func (p *ProgressTracker) CompleteStage(name string, finalCount int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	stage, ok := p.stages[name]
	if !ok {
		p.current++
		stage = &stageProgress{index: p.current, startTime: time.Now()}
		p.stages[name] = stage
	}

	elapsed := time.Since(stage.startTime).Truncate(time.Millisecond)
	p.callback(name, finalCount, finalCount,
		fmt.Sprintf("Stage %d/%d: %s completed (%d rows, %v)",
			stage.index, p.total, name, finalCount, elapsed))
}

// NoOpProgressCallback discards progress reports.
func NoOpProgressCallback(stage string, current, total int64, message string) {}

// LogProgressCallback routes progress reports to a leveled log function.
func LogProgressCallback(logFunc func(level, message string)) ProgressCallback {
	return func(stage string, current, total int64, message string) {
		if logFunc != nil {
			logFunc("info", fmt.Sprintf("[QUERY_PROGRESS] %s", message))
		}
	}
}

// ThrottledProgressCallback drops reports arriving within minInterval of the
// previously forwarded one.
func ThrottledProgressCallback(callback ProgressCallback, minInterval time.Duration) ProgressCallback {
	var mu sync.Mutex
	var last time.Time

	return func(stage string, current, total int64, message string) {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		if now.Sub(last) < minInterval {
			return
		}
		last = now
		if callback != nil {
			callback(stage, current, total, message)
		}
	}
}

// ProgressEstimator predicts stage output sizes from the input row count.
type ProgressEstimator struct {
	inputRows int64
}

// NewProgressEstimator creates an estimator for a pipeline fed inputRows rows.
func NewProgressEstimator(inputRows int64) *ProgressEstimator {
	return &ProgressEstimator{inputRows: inputRows}
}

// EstimateStageOutput returns the expected output row count for a stage, or
// -1 when it cannot be predicted.
func (e *ProgressEstimator) EstimateStageOutput(stage PipelineStage) int64 {
	if e.inputRows <= 0 {
		return -1
	}
	ratio := stage.EstimateOutputSize()
	if ratio < 0 {
		return -1
	}
	return int64(float64(e.inputRows) * ratio)
}
