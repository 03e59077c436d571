// Package parallel provides a dynamically scaling worker pool used to run
// independent FOL queries concurrently against a shared, read-only
// knowledge base (cmd/folkb batch). It carries its own execution-statistics
// and deadlock-detection instruments so a caller can label and observe the
// individual tasks it submits, the way pkg/fol/engine labels and logs the
// individual steps of one query.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/gitrdm/gokanlogic/pkg/fol/folerr"
)

// WorkerPool manages a pool of goroutines that scales between minWorkers
// and maxWorkers based on queue depth. It provides controlled concurrency
// with backpressure handling to prevent resource exhaustion when a batch
// submits many queries at once.
type WorkerPool struct {
	maxWorkers     int
	minWorkers     int
	currentWorkers int
	taskChan       chan func()
	workerWg       sync.WaitGroup
	shutdownChan   chan struct{}
	scaleChan      chan int // Channel for scaling requests
	once           sync.Once
	mu             sync.RWMutex

	// Scaling parameters
	scaleUpThreshold   int           // Queue depth to trigger scale up
	scaleDownThreshold int           // Queue depth to trigger scale down
	scaleCheckInterval time.Duration // How often to check scaling
	lastScaleTime      time.Time     // Last time we scaled
	scaleCooldown      time.Duration // Minimum time between scaling operations

	// Monitoring and statistics
	stats            *ExecutionStats
	deadlockDetector *DeadlockDetector
	logger           *zap.SugaredLogger
}

// PoolOption configures a WorkerPool at construction, mirroring
// pkg/fol/engine's own functional-option Option type.
type PoolOption func(*WorkerPool)

// WithPoolLogger attaches a zap logger; scaling events and task panics are
// logged at debug/warn level. Defaults to a no-op logger.
func WithPoolLogger(logger *zap.SugaredLogger) PoolOption {
	return func(wp *WorkerPool) { wp.logger = logger }
}

// NewWorkerPool creates a new worker pool with the specified number of
// workers. If maxWorkers is 0 or negative, it defaults to the number of
// CPU cores.
func NewWorkerPool(maxWorkers int, opts ...PoolOption) *WorkerPool {
	return NewDynamicWorkerPool(maxWorkers, 1, opts...) // Default min workers to 1
}

// NewDynamicWorkerPool creates a new worker pool with dynamic scaling capabilities.
func NewDynamicWorkerPool(maxWorkers, minWorkers int, opts ...PoolOption) *WorkerPool {
	return NewDynamicWorkerPoolWithConfig(maxWorkers, minWorkers, DynamicConfig{}, opts...)
}

// DynamicConfig holds configuration for dynamic scaling.
type DynamicConfig struct {
	ScaleUpThreshold   int
	ScaleDownThreshold int
	ScaleCheckInterval time.Duration
	ScaleCooldown      time.Duration
}

// NewDynamicWorkerPoolWithConfig creates a new worker pool with custom dynamic scaling config.
func NewDynamicWorkerPoolWithConfig(maxWorkers, minWorkers int, config DynamicConfig, opts ...PoolOption) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	if minWorkers <= 0 {
		minWorkers = 1
	}
	if minWorkers > maxWorkers {
		minWorkers = maxWorkers
	}

	// Set defaults for config
	if config.ScaleUpThreshold <= 0 {
		config.ScaleUpThreshold = maxWorkers * 2
	}
	if config.ScaleDownThreshold <= 0 {
		config.ScaleDownThreshold = maxWorkers / 2
		if config.ScaleDownThreshold <= 0 {
			config.ScaleDownThreshold = 1
		}
	}
	if config.ScaleCheckInterval <= 0 {
		config.ScaleCheckInterval = 100 * time.Millisecond
	}
	if config.ScaleCooldown <= 0 {
		config.ScaleCooldown = 500 * time.Millisecond
	}

	pool := &WorkerPool{
		maxWorkers:         maxWorkers,
		minWorkers:         minWorkers,
		currentWorkers:     minWorkers,
		taskChan:           make(chan func(), maxWorkers*4), // Larger buffer for dynamic scaling
		shutdownChan:       make(chan struct{}),
		scaleChan:          make(chan int, 1),
		scaleUpThreshold:   config.ScaleUpThreshold,
		scaleDownThreshold: config.ScaleDownThreshold,
		scaleCheckInterval: config.ScaleCheckInterval,
		scaleCooldown:      config.ScaleCooldown,
		lastScaleTime:      time.Now(),
		stats:              NewExecutionStats(),
		deadlockDetector:   NewDeadlockDetector(30*time.Second, 5*time.Second),
		logger:             zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(pool)
	}

	// Start initial worker goroutines
	for i := 0; i < minWorkers; i++ {
		pool.workerWg.Add(1)
		go pool.worker()
	}

	// Start scaling monitor
	go pool.scalingMonitor()

	return pool
}

// worker is the main worker loop that processes tasks from the channel.
func (wp *WorkerPool) worker() {
	defer wp.workerWg.Done()

	for {
		select {
		case task := <-wp.taskChan:
			if task != nil {
				startTime := time.Now()
				func() {
					defer func() {
						if r := recover(); r != nil {
							wp.logger.Warnw("task panicked", "recovered", r)
							if wp.stats != nil {
								wp.stats.RecordTaskFailed(fmt.Errorf("task panicked: %v", r))
							}
						}
					}()
					task()
					if wp.stats != nil {
						duration := time.Since(startTime)
						wp.stats.RecordTaskCompleted(duration)
					}
				}()
			}
		case <-wp.shutdownChan:
			return
		}
	}
}

// Submit submits a task to the worker pool for execution. If the pool is
// full, this call blocks until a worker becomes available, ctx is
// cancelled (folerr.Cancelled), or the pool has been shut down
// (folerr.InvalidState).
func (wp *WorkerPool) Submit(ctx context.Context, task func()) error {
	if wp.stats != nil {
		wp.stats.RecordTaskSubmitted()
	}

	// Shutdown closes taskChan, so a shut-down pool must be detected before
	// the send below can be attempted.
	select {
	case <-wp.shutdownChan:
		if wp.stats != nil {
			wp.stats.RecordTaskCancelled()
		}
		return folerr.New("WorkerPool.Submit", folerr.InvalidState, "pool has been shut down")
	default:
	}

	select {
	case wp.taskChan <- task:
		if wp.stats != nil {
			wp.stats.RecordQueueDepth(len(wp.taskChan))
			wp.mu.RLock()
			workerCount := wp.currentWorkers
			wp.mu.RUnlock()
			wp.stats.RecordWorkerCount(workerCount)
		}
		return nil
	case <-ctx.Done():
		if wp.stats != nil {
			wp.stats.RecordTaskCancelled()
		}
		return folerr.New("WorkerPool.Submit", folerr.Cancelled, "%v", ctx.Err())
	case <-wp.shutdownChan:
		if wp.stats != nil {
			wp.stats.RecordTaskCancelled()
		}
		return folerr.New("WorkerPool.Submit", folerr.InvalidState, "pool has been shut down")
	}
}

// Shutdown gracefully shuts down the worker pool, waiting for all
// currently executing tasks to complete.
func (wp *WorkerPool) Shutdown() {
	wp.once.Do(func() {
		close(wp.shutdownChan)
		close(wp.taskChan)
		wp.workerWg.Wait()

		// Finalize statistics
		if wp.stats != nil {
			wp.stats.Finalize()
		}

		// Shutdown deadlock detector
		if wp.deadlockDetector != nil {
			wp.deadlockDetector.Shutdown()
		}
	})
}

// scalingMonitor continuously monitors queue depth and adjusts worker count.
func (wp *WorkerPool) scalingMonitor() {
	ticker := time.NewTicker(wp.scaleCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			wp.checkScaling()
		case newWorkers := <-wp.scaleChan:
			wp.adjustWorkers(newWorkers)
		case <-wp.shutdownChan:
			return
		}
	}
}

// checkScaling evaluates current queue depth and decides if scaling is needed.
func (wp *WorkerPool) checkScaling() {
	wp.mu.RLock()
	if time.Since(wp.lastScaleTime) < wp.scaleCooldown {
		wp.mu.RUnlock()
		return
	}
	currentWorkers := wp.currentWorkers
	maxWorkers := wp.maxWorkers
	minWorkers := wp.minWorkers
	scaleUpThreshold := wp.scaleUpThreshold
	scaleDownThreshold := wp.scaleDownThreshold
	wp.mu.RUnlock()

	queueDepth := len(wp.taskChan)

	// Scale up if queue is getting full and we have room
	if queueDepth > scaleUpThreshold && currentWorkers < maxWorkers {
		newWorkers := currentWorkers + 1
		if newWorkers > maxWorkers {
			newWorkers = maxWorkers
		}
		select {
		case wp.scaleChan <- newWorkers:
		default:
			// Scale request already pending
		}
	} else if queueDepth < scaleDownThreshold && currentWorkers > minWorkers {
		// Scale down if queue is mostly empty and we have extra workers
		newWorkers := currentWorkers - 1
		if newWorkers < minWorkers {
			newWorkers = minWorkers
		}
		select {
		case wp.scaleChan <- newWorkers:
		default:
			// Scale request already pending
		}
	}
}

// adjustWorkers changes the number of active workers.
func (wp *WorkerPool) adjustWorkers(targetWorkers int) {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	currentWorkers := wp.currentWorkers
	if targetWorkers == currentWorkers {
		return
	}

	if targetWorkers > currentWorkers {
		// Scale up: add more workers
		for i := currentWorkers; i < targetWorkers; i++ {
			wp.workerWg.Add(1)
			go wp.worker()
		}
		if wp.stats != nil {
			wp.stats.RecordScaleUp()
		}
		wp.logger.Debugw("scaled up", "workers", targetWorkers)
	} else {
		// Scale down: workers will terminate naturally when they finish current tasks
		// We don't forcibly terminate workers to avoid interrupting work
		if wp.stats != nil {
			wp.stats.RecordScaleDown()
		}
		wp.logger.Debugw("scaled down", "workers", targetWorkers)
	}

	wp.currentWorkers = targetWorkers
	wp.lastScaleTime = time.Now()
}

// GetWorkerCount returns the current number of active workers.
func (wp *WorkerPool) GetWorkerCount() int {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	return wp.currentWorkers
}

// GetQueueDepth returns the current number of queued tasks.
func (wp *WorkerPool) GetQueueDepth() int {
	return len(wp.taskChan)
}

// GetMaxWorkers returns the maximum number of workers.
func (wp *WorkerPool) GetMaxWorkers() int {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	return wp.maxWorkers
}

// GetStats returns the execution statistics collector.
func (wp *WorkerPool) GetStats() *ExecutionStats {
	return wp.stats
}

// GetDeadlockDetector returns the deadlock detector used to label and
// time-bound the tasks this pool runs.
func (wp *WorkerPool) GetDeadlockDetector() *DeadlockDetector {
	return wp.deadlockDetector
}

// ExecutionStats collects comprehensive statistics for parallel execution monitoring.
type ExecutionStats struct {
	mu sync.RWMutex

	// Timing statistics
	StartTime          time.Time
	EndTime            time.Time
	TotalExecutionTime time.Duration

	// Task statistics
	TasksSubmitted int64
	TasksCompleted int64
	TasksFailed    int64
	TasksCancelled int64

	// Worker statistics
	PeakWorkerCount    int
	AverageWorkerCount float64
	WorkerUtilization  float64

	// Queue statistics
	PeakQueueDepth    int
	AverageQueueDepth float64
	QueueFullEvents   int64

	// Performance metrics
	TasksPerSecond      float64
	AverageTaskDuration time.Duration

	// Error tracking
	LastError  error
	ErrorCount int64

	// Deadlock detection
	PotentialDeadlocks int64
	TimeoutEvents      int64

	// Scaling events
	ScaleUpEvents   int64
	ScaleDownEvents int64

	// Resource usage
	GoroutineCount int

	// Historical data for analysis
	workerCountHistory  []workerCountSample
	queueDepthHistory   []queueDepthSample
	taskDurationHistory []time.Duration
}

type workerCountSample struct {
	timestamp time.Time
	count     int
}

type queueDepthSample struct {
	timestamp time.Time
	depth     int
}

// NewExecutionStats creates a new execution statistics collector.
func NewExecutionStats() *ExecutionStats {
	return &ExecutionStats{
		StartTime:           time.Now(),
		workerCountHistory:  make([]workerCountSample, 0, 1000),
		queueDepthHistory:   make([]queueDepthSample, 0, 1000),
		taskDurationHistory: make([]time.Duration, 0, 10000),
	}
}

// RecordTaskSubmitted records that a task was submitted for execution.
func (es *ExecutionStats) RecordTaskSubmitted() {
	atomic.AddInt64(&es.TasksSubmitted, 1)
}

// RecordTaskCompleted records that a task completed successfully.
func (es *ExecutionStats) RecordTaskCompleted(duration time.Duration) {
	atomic.AddInt64(&es.TasksCompleted, 1)
	es.mu.Lock()
	es.taskDurationHistory = append(es.taskDurationHistory, duration)
	es.mu.Unlock()
}

// RecordTaskFailed records that a task failed with an error.
func (es *ExecutionStats) RecordTaskFailed(err error) {
	atomic.AddInt64(&es.TasksFailed, 1)
	atomic.AddInt64(&es.ErrorCount, 1)
	es.mu.Lock()
	es.LastError = err
	es.mu.Unlock()
}

// RecordTaskCancelled records that a task was cancelled.
func (es *ExecutionStats) RecordTaskCancelled() {
	atomic.AddInt64(&es.TasksCancelled, 1)
}

// RecordWorkerCount records the current worker count for historical tracking.
func (es *ExecutionStats) RecordWorkerCount(count int) {
	es.mu.Lock()
	defer es.mu.Unlock()

	if count > es.PeakWorkerCount {
		es.PeakWorkerCount = count
	}

	es.workerCountHistory = append(es.workerCountHistory, workerCountSample{
		timestamp: time.Now(),
		count:     count,
	})

	// Keep history bounded
	if len(es.workerCountHistory) > 1000 {
		es.workerCountHistory = es.workerCountHistory[1:]
	}
}

// RecordQueueDepth records the current queue depth for historical tracking.
func (es *ExecutionStats) RecordQueueDepth(depth int) {
	es.mu.Lock()
	defer es.mu.Unlock()

	if depth > es.PeakQueueDepth {
		es.PeakQueueDepth = depth
	}

	es.queueDepthHistory = append(es.queueDepthHistory, queueDepthSample{
		timestamp: time.Now(),
		depth:     depth,
	})

	// Keep history bounded
	if len(es.queueDepthHistory) > 1000 {
		es.queueDepthHistory = es.queueDepthHistory[1:]
	}
}

// RecordQueueFull records that the queue became full.
func (es *ExecutionStats) RecordQueueFull() {
	atomic.AddInt64(&es.QueueFullEvents, 1)
}

// RecordScaleUp records a scaling up event.
func (es *ExecutionStats) RecordScaleUp() {
	atomic.AddInt64(&es.ScaleUpEvents, 1)
}

// RecordScaleDown records a scaling down event.
func (es *ExecutionStats) RecordScaleDown() {
	atomic.AddInt64(&es.ScaleDownEvents, 1)
}

// RecordPotentialDeadlock records a potential deadlock situation.
func (es *ExecutionStats) RecordPotentialDeadlock() {
	atomic.AddInt64(&es.PotentialDeadlocks, 1)
}

// RecordTimeout records a timeout event.
func (es *ExecutionStats) RecordTimeout() {
	atomic.AddInt64(&es.TimeoutEvents, 1)
}

// UpdateResourceUsage updates current resource usage statistics.
func (es *ExecutionStats) UpdateResourceUsage() {
	es.mu.Lock()
	es.GoroutineCount = runtime.NumGoroutine()
	es.mu.Unlock()
}

// Finalize computes final statistics when execution completes.
func (es *ExecutionStats) Finalize() {
	es.mu.Lock()
	defer es.mu.Unlock()

	es.EndTime = time.Now()
	es.TotalExecutionTime = es.EndTime.Sub(es.StartTime)

	// Calculate averages
	if len(es.workerCountHistory) > 0 {
		total := 0
		for _, sample := range es.workerCountHistory {
			total += sample.count
		}
		es.AverageWorkerCount = float64(total) / float64(len(es.workerCountHistory))
	}

	if len(es.queueDepthHistory) > 0 {
		total := 0
		for _, sample := range es.queueDepthHistory {
			total += sample.depth
		}
		es.AverageQueueDepth = float64(total) / float64(len(es.queueDepthHistory))
	}

	if len(es.taskDurationHistory) > 0 {
		total := time.Duration(0)
		for _, duration := range es.taskDurationHistory {
			total += duration
		}
		es.AverageTaskDuration = total / time.Duration(len(es.taskDurationHistory))
	}

	// Calculate throughput
	if es.TotalExecutionTime > 0 {
		es.TasksPerSecond = float64(es.TasksCompleted) / es.TotalExecutionTime.Seconds()
	}

	// Calculate worker utilization (simplified)
	if es.AverageWorkerCount > 0 && es.TotalExecutionTime > 0 {
		busyTime := es.AverageTaskDuration * time.Duration(es.TasksCompleted)
		totalWorkerTime := es.TotalExecutionTime * time.Duration(es.AverageWorkerCount)
		if totalWorkerTime > 0 {
			es.WorkerUtilization = float64(busyTime) / float64(totalWorkerTime)
		}
	}
}

// GetStats returns a copy of the current statistics.
func (es *ExecutionStats) GetStats() ExecutionStats {
	es.mu.RLock()
	defer es.mu.RUnlock()

	// Create a copy without the mutex, using atomic loads for atomic fields
	return ExecutionStats{
		StartTime:           es.StartTime,
		EndTime:             es.EndTime,
		TotalExecutionTime:  es.TotalExecutionTime,
		TasksSubmitted:      atomic.LoadInt64(&es.TasksSubmitted),
		TasksCompleted:      atomic.LoadInt64(&es.TasksCompleted),
		TasksFailed:         atomic.LoadInt64(&es.TasksFailed),
		TasksCancelled:      atomic.LoadInt64(&es.TasksCancelled),
		PeakWorkerCount:     es.PeakWorkerCount,
		AverageWorkerCount:  es.AverageWorkerCount,
		WorkerUtilization:   es.WorkerUtilization,
		PeakQueueDepth:      es.PeakQueueDepth,
		AverageQueueDepth:   es.AverageQueueDepth,
		QueueFullEvents:     atomic.LoadInt64(&es.QueueFullEvents),
		TasksPerSecond:      es.TasksPerSecond,
		AverageTaskDuration: es.AverageTaskDuration,
		LastError:           es.LastError,
		ErrorCount:          atomic.LoadInt64(&es.ErrorCount),
		PotentialDeadlocks:  atomic.LoadInt64(&es.PotentialDeadlocks),
		TimeoutEvents:       atomic.LoadInt64(&es.TimeoutEvents),
		ScaleUpEvents:       atomic.LoadInt64(&es.ScaleUpEvents),
		ScaleDownEvents:     atomic.LoadInt64(&es.ScaleDownEvents),
		GoroutineCount:      es.GoroutineCount,
		workerCountHistory:  append([]workerCountSample(nil), es.workerCountHistory...),
		queueDepthHistory:   append([]queueDepthSample(nil), es.queueDepthHistory...),
		taskDurationHistory: append([]time.Duration(nil), es.taskDurationHistory...),
	}
}

// String returns a human-readable summary of the execution statistics.
func (es *ExecutionStats) String() string {
	stats := es.GetStats()

	var lastErrorStr string
	if stats.LastError != nil {
		lastErrorStr = stats.LastError.Error()
	} else {
		lastErrorStr = "none"
	}

	return fmt.Sprintf("ExecutionStats{\n"+
		"  Duration: %v\n"+
		"  Tasks: %d submitted, %d completed, %d failed, %d cancelled\n"+
		"  Workers: peak=%d, avg=%.1f, utilization=%.1f%%\n"+
		"  Queue: peak=%d, avg=%.1f, full_events=%d\n"+
		"  Performance: %.1f tasks/sec, avg_task_time=%v\n"+
		"  Errors: %d total, last=%s\n"+
		"  Events: %d scale_up, %d scale_down, %d deadlocks, %d timeouts\n"+
		"  Resources: %d goroutines\n"+
		"}",
		stats.TotalExecutionTime,
		stats.TasksSubmitted, stats.TasksCompleted, stats.TasksFailed, stats.TasksCancelled,
		stats.PeakWorkerCount, stats.AverageWorkerCount, stats.WorkerUtilization*100,
		stats.PeakQueueDepth, stats.AverageQueueDepth, stats.QueueFullEvents,
		stats.TasksPerSecond, stats.AverageTaskDuration,
		stats.ErrorCount, lastErrorStr,
		stats.ScaleUpEvents, stats.ScaleDownEvents, stats.PotentialDeadlocks, stats.TimeoutEvents,
		stats.GoroutineCount)
}

// DeadlockDetector monitors long-running tasks submitted to a WorkerPool.
// cmd/folkb batch registers one task per goal, labeled with the goal's
// source text, so a hung query can be identified by the s-expression that
// produced it rather than an opaque task index.
type DeadlockDetector struct {
	mu sync.RWMutex

	// Configuration
	timeoutDuration time.Duration
	checkInterval   time.Duration
	maxRetries      int

	// State tracking
	activeTasks        map[string]*taskInfo
	lastActivity       time.Time
	potentialDeadlocks int64

	// Channels
	shutdownChan chan struct{}
	alertChan    chan DeadlockAlert
}

type taskInfo struct {
	id          string
	startTime   time.Time
	lastUpdate  time.Time
	description string
}

// DeadlockAlert reports a task timeout, a suspected circular wait, or a
// system-wide stall observed by a DeadlockDetector.
type DeadlockAlert struct {
	Type        DeadlockAlertType
	TaskID      string
	Description string
	Timestamp   time.Time
}

// DeadlockAlertType classifies a DeadlockAlert.
type DeadlockAlertType int

const (
	AlertTaskTimeout DeadlockAlertType = iota
	AlertPotentialDeadlock
	AlertSystemStall
)

// NewDeadlockDetector creates a new deadlock detector.
func NewDeadlockDetector(timeoutDuration, checkInterval time.Duration) *DeadlockDetector {
	if timeoutDuration <= 0 {
		timeoutDuration = 30 * time.Second
	}
	if checkInterval <= 0 {
		checkInterval = 5 * time.Second
	}

	dd := &DeadlockDetector{
		timeoutDuration: timeoutDuration,
		checkInterval:   checkInterval,
		maxRetries:      3,
		activeTasks:     make(map[string]*taskInfo),
		lastActivity:    time.Now(),
		shutdownChan:    make(chan struct{}),
		alertChan:       make(chan DeadlockAlert, 10),
	}

	go dd.monitor()

	return dd
}

// RegisterTask registers a new active task for monitoring.
func (dd *DeadlockDetector) RegisterTask(taskID, description string) {
	dd.mu.Lock()
	defer dd.mu.Unlock()

	dd.activeTasks[taskID] = &taskInfo{
		id:          taskID,
		startTime:   time.Now(),
		lastUpdate:  time.Now(),
		description: description,
	}
	dd.lastActivity = time.Now()
}

// UpdateTask updates the last activity time for a task.
func (dd *DeadlockDetector) UpdateTask(taskID string) {
	dd.mu.Lock()
	defer dd.mu.Unlock()

	if task, exists := dd.activeTasks[taskID]; exists {
		task.lastUpdate = time.Now()
		dd.lastActivity = time.Now()
	}
}

// UnregisterTask removes a task from monitoring.
func (dd *DeadlockDetector) UnregisterTask(taskID string) {
	dd.mu.Lock()
	defer dd.mu.Unlock()

	delete(dd.activeTasks, taskID)
}

// GetAlerts returns a channel for receiving deadlock alerts.
func (dd *DeadlockDetector) GetAlerts() <-chan DeadlockAlert {
	return dd.alertChan
}

// GetActiveTaskCount returns the number of currently monitored tasks.
func (dd *DeadlockDetector) GetActiveTaskCount() int {
	dd.mu.RLock()
	defer dd.mu.RUnlock()
	return len(dd.activeTasks)
}

// GetPotentialDeadlocks returns the count of potential deadlocks detected.
func (dd *DeadlockDetector) GetPotentialDeadlocks() int64 {
	dd.mu.RLock()
	defer dd.mu.RUnlock()
	return dd.potentialDeadlocks
}

// Shutdown stops the deadlock detector.
func (dd *DeadlockDetector) Shutdown() {
	close(dd.shutdownChan)
}

// monitor runs the deadlock detection loop.
func (dd *DeadlockDetector) monitor() {
	ticker := time.NewTicker(dd.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			dd.checkForDeadlocks()
		case <-dd.shutdownChan:
			return
		}
	}
}

// checkForDeadlocks performs deadlock detection checks.
func (dd *DeadlockDetector) checkForDeadlocks() {
	dd.mu.Lock()
	defer dd.mu.Unlock()

	now := time.Now()

	// Check for task timeouts
	for taskID, task := range dd.activeTasks {
		if now.Sub(task.lastUpdate) > dd.timeoutDuration {
			alert := DeadlockAlert{
				Type:        AlertTaskTimeout,
				TaskID:      taskID,
				Description: fmt.Sprintf("task %q timed out after %v", task.description, now.Sub(task.startTime)),
				Timestamp:   now,
			}
			select {
			case dd.alertChan <- alert:
			default:
				// Alert channel full, drop alert
			}
			dd.potentialDeadlocks++
		}
	}

	// Check for system-wide stall (no activity for extended period)
	stallThreshold := dd.timeoutDuration * 2
	if now.Sub(dd.lastActivity) > stallThreshold && len(dd.activeTasks) > 0 {
		alert := DeadlockAlert{
			Type:        AlertSystemStall,
			Description: fmt.Sprintf("no activity for %v with %d active tasks", now.Sub(dd.lastActivity), len(dd.activeTasks)),
			Timestamp:   now,
		}
		select {
		case dd.alertChan <- alert:
		default:
			// Alert channel full, drop alert
		}
		dd.potentialDeadlocks++
	}

	// Check for potential deadlocks (many long-running tasks at once)
	if len(dd.activeTasks) > 0 {
		oldestTask := now
		totalTasks := 0

		for _, task := range dd.activeTasks {
			if task.startTime.Before(oldestTask) {
				oldestTask = task.startTime
			}
			totalTasks++
		}

		if totalTasks >= 3 && now.Sub(oldestTask) > dd.timeoutDuration*2 {
			alert := DeadlockAlert{
				Type:        AlertPotentialDeadlock,
				Description: fmt.Sprintf("%d tasks running for an extended period", totalTasks),
				Timestamp:   now,
			}
			select {
			case dd.alertChan <- alert:
			default:
				// Alert channel full, drop alert
			}
			dd.potentialDeadlocks++
		}
	}
}

// TimeoutContext derives a child context from parent bounded by the
// detector's timeout, and registers taskID/description as an active task
// until the returned cancel func runs. cmd/folkb batch calls this once per
// goal so a goal that never resolves surfaces in GetAlerts() labeled by
// its own source text instead of as an anonymous hang.
func (dd *DeadlockDetector) TimeoutContext(parent context.Context, taskID, description string) (context.Context, context.CancelFunc) {
	dd.RegisterTask(taskID, description)

	ctx, cancel := context.WithTimeout(parent, dd.timeoutDuration)

	originalCancel := cancel
	cancel = func() {
		dd.UnregisterTask(taskID)
		originalCancel()
	}

	return ctx, cancel
}

// ExecuteWithDeadlockProtection executes a function with deadlock protection.
func (dd *DeadlockDetector) ExecuteWithDeadlockProtection(ctx context.Context, taskID, description string, fn func(context.Context) error) error {
	taskCtx, cancel := dd.TimeoutContext(ctx, taskID, description)
	defer cancel()

	done := make(chan error, 1)

	go func() {
		defer dd.UpdateTask(taskID) // Final update
		done <- fn(taskCtx)
	}()

	select {
	case err := <-done:
		return err
	case <-taskCtx.Done():
		if taskCtx.Err() == context.DeadlineExceeded {
			return folerr.New("DeadlockDetector.ExecuteWithDeadlockProtection", folerr.Cancelled, "task %q timed out: %v", description, taskCtx.Err())
		}
		return folerr.Wrap(taskCtx.Err(), "DeadlockDetector.ExecuteWithDeadlockProtection")
	}
}
