// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package metric defines the OpenTelemetry instruments of the kernel.
package metric

import "go.opentelemetry.io/otel/metric"

// KernelMetric groups the instruments describing event memory and active object load.
//
// Instruments:
//   - kernel.pool.free         (Int64ObservableGauge) free blocks per pool
//   - kernel.pool.min_free     (Int64ObservableGauge) low-water mark per pool
//   - kernel.queue.depth       (Int64ObservableGauge) queued events per active object
//   - kernel.queue.high_water  (Int64ObservableGauge) queue high-water mark per active object
//   - kernel.events.processed  (Int64ObservableCounter) dispatched events per active object
//   - kernel.events.published  (Int64ObservableCounter) events multicast by the kernel
type KernelMetric struct {
	poolFree        metric.Int64ObservableGauge
	poolMinFree     metric.Int64ObservableGauge
	queueDepth      metric.Int64ObservableGauge
	queueHighWater  metric.Int64ObservableGauge
	eventsProcessed metric.Int64ObservableCounter
	eventsPublished metric.Int64ObservableCounter
}

// NewKernelMetric creates the kernel instruments using the provided Meter.
// It returns an error if any instrument cannot be created.
func NewKernelMetric(meter metric.Meter) (*KernelMetric, error) {
	var instruments KernelMetric
	var err error

	if instruments.poolFree, err = meter.Int64ObservableGauge(
		"kernel.pool.free",
		metric.WithDescription("Number of free blocks in an event pool"),
	); err != nil {
		return nil, err
	}

	if instruments.poolMinFree, err = meter.Int64ObservableGauge(
		"kernel.pool.min_free",
		metric.WithDescription("Minimum number of free blocks ever observed in an event pool"),
	); err != nil {
		return nil, err
	}

	if instruments.queueDepth, err = meter.Int64ObservableGauge(
		"kernel.queue.depth",
		metric.WithDescription("Number of events waiting in an active object queue"),
	); err != nil {
		return nil, err
	}

	if instruments.queueHighWater, err = meter.Int64ObservableGauge(
		"kernel.queue.high_water",
		metric.WithDescription("Maximum number of events ever queued for an active object"),
	); err != nil {
		return nil, err
	}

	if instruments.eventsProcessed, err = meter.Int64ObservableCounter(
		"kernel.events.processed",
		metric.WithDescription("Total number of events dispatched to an active object"),
	); err != nil {
		return nil, err
	}

	if instruments.eventsPublished, err = meter.Int64ObservableCounter(
		"kernel.events.published",
		metric.WithDescription("Total number of events published by the kernel"),
	); err != nil {
		return nil, err
	}

	return &instruments, nil
}

// PoolFree returns the gauge of free blocks per pool
func (x *KernelMetric) PoolFree() metric.Int64ObservableGauge {
	return x.poolFree
}

// PoolMinFree returns the gauge of the pool low-water mark
func (x *KernelMetric) PoolMinFree() metric.Int64ObservableGauge {
	return x.poolMinFree
}

// QueueDepth returns the gauge of queued events per active object
func (x *KernelMetric) QueueDepth() metric.Int64ObservableGauge {
	return x.queueDepth
}

// QueueHighWater returns the gauge of the queue high-water mark per active object
func (x *KernelMetric) QueueHighWater() metric.Int64ObservableGauge {
	return x.queueHighWater
}

// EventsProcessed returns the counter of dispatched events
func (x *KernelMetric) EventsProcessed() metric.Int64ObservableCounter {
	return x.eventsProcessed
}

// EventsPublished returns the counter of published events
func (x *KernelMetric) EventsPublished() metric.Int64ObservableCounter {
	return x.eventsPublished
}

// Observables returns every instrument, as expected by Meter.RegisterCallback
func (x *KernelMetric) Observables() []metric.Observable {
	return []metric.Observable{
		x.poolFree,
		x.poolMinFree,
		x.queueDepth,
		x.queueHighWater,
		x.eventsProcessed,
		x.eventsPublished,
	}
}
