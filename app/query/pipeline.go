package query

import (
	"context"
	"fmt"
	"log"

	"gridsift/app/cache"
	"gridsift/types"
)

// QueryPipeline orchestrates the execution of multiple pipeline stages
type QueryPipeline struct {
	stages      []PipelineStage
	cache       *cache.Cache
	progress    ProgressCallback
	ctx         context.Context
	fileHash    string
	fileOptions types.FileOptions // Parse options (affect cache key)
	cacheConfig CacheConfig
}

// NewQueryPipeline creates a new query pipeline
func NewQueryPipeline(ctx context.Context, fileHash string, opts types.FileOptions, c *cache.Cache, progress ProgressCallback, config CacheConfig) *QueryPipeline {
	if progress == nil {
		progress = NoOpProgressCallback
	}

	return &QueryPipeline{
		ctx:         ctx,
		fileHash:    fileHash,
		fileOptions: opts,
		cache:       c,
		progress:    progress,
		cacheConfig: config,
	}
}

// AddStage adds a pipeline stage
func (p *QueryPipeline) AddStage(stage PipelineStage) {
	p.stages = append(p.stages, stage)
}

// Execute runs the pipeline with the given input data
func (p *QueryPipeline) Execute(input *StageResult) (*QueryResult, error) {
	if len(p.stages) == 0 {
		// No stages, return input as-is
		for i, row := range input.Rows {
			row.DisplayIndex = i
		}
		return &QueryResult{
			Header: input.Header,
			Rows:   input.Rows,
			Total:  int64(len(input.Rows)),
			Cached: false,
		}, nil
	}

	// Check if we can use cached results (full pipeline cache)
	if p.cache != nil && p.cacheConfig.EnablePipelineCache {
		cacheKey := BuildCacheKey(p.fileHash, p.fileOptions, p.stages)
		if entry, found := p.cache.Get(cacheKey); found && entry.IsComplete {
			log.Printf("[CACHE_HIT] Using cached result for key: %s (%d rows)", cacheKey, len(entry.Rows))
			// Rows are shared with other pipelines over the same dataset, so
			// a later run may have overwritten their display positions.
			for i, row := range entry.Rows {
				row.DisplayIndex = i
			}
			return &QueryResult{
				Header: entry.Header,
				Rows:   entry.Rows,
				Total:  int64(len(entry.Rows)),
				Cached: true,
			}, nil
		}
		log.Printf("[CACHE_MISS] No cached result for key: %s", cacheKey)
	}

	// Set up progress tracking
	tracker := NewProgressTracker(p.progress, len(p.stages))

	// Execute stages sequentially with incremental caching
	currentResult := input
	estimator := NewProgressEstimator(int64(len(input.Rows)))
	executedStages := []PipelineStage{} // Track which stages we've executed

	for _, stage := range p.stages {
		// Check for cancellation
		select {
		case <-p.ctx.Done():
			return nil, p.ctx.Err()
		default:
		}

		// Build cache key for this stage's output
		stageKey := BuildCacheKey(p.fileHash, p.fileOptions, append(executedStages, stage))

		// Check if this stage's output is cached
		if p.cache != nil && p.cacheConfig.EnableStageCache && stage.CanCache() {
			if entry, found := p.cache.Get(stageKey); found && entry.IsComplete {
				log.Printf("[CACHE_HIT_STAGE] Using cached result for stage %s: %s (%d rows)",
					stage.Name(), stageKey, len(entry.Rows))

				currentResult = &StageResult{
					Header: entry.Header,
					Rows:   entry.Rows,
				}
				executedStages = append(executedStages, stage)
				tracker.CompleteStage(stage.Name(), int64(len(entry.Rows)))
				continue
			}
		}

		// Cache miss - execute stage
		estimatedOutput := estimator.EstimateStageOutput(stage)
		tracker.StartStage(stage.Name(), estimatedOutput)

		if reporter, ok := stage.(progressReporter); ok {
			name := stage.Name()
			reporter.setProgress(func(current int64) {
				tracker.UpdateStage(name, current)
			})
		}

		stageResult, err := stage.Execute(currentResult)
		if err != nil {
			return nil, fmt.Errorf("stage %s failed: %w", stage.Name(), err)
		}

		// Cache this stage's output if possible
		if p.cache != nil && p.shouldCacheStage(stage, stageResult) {
			p.cache.Store(stageKey, stageResult.Header, stageResult.Rows)
			log.Printf("[CACHE_STORE_STAGE] Cached stage %s: %s (%d rows)",
				stage.Name(), stageKey, len(stageResult.Rows))
		}

		// Use stage result for next stage
		currentResult = stageResult
		executedStages = append(executedStages, stage)
		tracker.CompleteStage(stage.Name(), int64(len(stageResult.Rows)))

		if len(stageResult.Rows) > 0 {
			estimator = NewProgressEstimator(int64(len(stageResult.Rows)))
		}
	}

	// Assign display indices after all stages complete
	// DisplayIndex represents the 0-based position in the final result set
	for i, row := range currentResult.Rows {
		row.DisplayIndex = i
	}

	result := &QueryResult{
		Header: currentResult.Header,
		Rows:   currentResult.Rows,
		Total:  int64(len(currentResult.Rows)),
		Cached: false,
	}

	// Cache the result if possible. Rows are shared pointers into the loaded
	// dataset, so storing a result only costs pointer overhead.
	if p.cache != nil && p.cacheConfig.EnablePipelineCache && p.canCacheResult() {
		cacheKey := BuildCacheKey(p.fileHash, p.fileOptions, p.stages)
		p.cache.Store(cacheKey, result.Header, result.Rows)
		log.Printf("[CACHE_STORE] Stored result for key: %s (%d rows)", cacheKey, len(result.Rows))
	}

	return result, nil
}

// canCacheResult determines if the pipeline result should be cached
func (p *QueryPipeline) canCacheResult() bool {
	for _, stage := range p.stages {
		if !stage.CanCache() {
			return false
		}
	}
	return true
}

// shouldCacheStage determines if a stage result should be cached
func (p *QueryPipeline) shouldCacheStage(stage PipelineStage, result *StageResult) bool {
	if !p.cacheConfig.EnableStageCache {
		return false
	}

	if !stage.CanCache() {
		return false
	}

	// Pointer overhead only; still respect the configured limit
	estimatedSize := int64(len(result.Rows)) * 8
	if estimatedSize > p.cacheConfig.CacheSizeLimit {
		log.Printf("[CACHE_SKIP] Stage %s result too large (%d bytes > %d limit)",
			stage.Name(), estimatedSize, p.cacheConfig.CacheSizeLimit)
		return false
	}

	return true
}

// GetStages returns a copy of the pipeline stages
func (p *QueryPipeline) GetStages() []PipelineStage {
	stages := make([]PipelineStage, len(p.stages))
	copy(stages, p.stages)
	return stages
}

// Clear removes all stages from the pipeline
func (p *QueryPipeline) Clear() {
	p.stages = nil
}

// PipelineBuilder helps construct query pipelines
type PipelineBuilder struct {
	pipeline *QueryPipeline
}

// NewPipelineBuilder creates a new pipeline builder
func NewPipelineBuilder(ctx context.Context, fileHash string, opts types.FileOptions, c *cache.Cache, progress ProgressCallback, cacheConfig CacheConfig) *PipelineBuilder {
	return &PipelineBuilder{
		pipeline: NewQueryPipeline(ctx, fileHash, opts, c, progress, cacheConfig),
	}
}

// AddFilter adds a filter stage when the filter set has active constraints
func (b *PipelineBuilder) AddFilter(filters FilterSet) *PipelineBuilder {
	if filters.Active() > 0 {
		b.pipeline.AddStage(NewFilterStage(filters))
	}
	return b
}

// AddSort adds a sort stage when a sort is active
func (b *PipelineBuilder) AddSort(state SortState) *PipelineBuilder {
	if state.IsActive() {
		b.pipeline.AddStage(NewSortStage(state))
	}
	return b
}

// Build returns the constructed pipeline
func (b *PipelineBuilder) Build() *QueryPipeline {
	return b.pipeline
}
