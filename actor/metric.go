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

package actor

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tochemey/goactive/internal/metric"
)

func (k *Kernel) registerMetrics() error {
	provider := metric.NewProvider()
	if k.meterProvider != nil {
		provider = metric.NewProviderFrom(k.meterProvider)
	}

	meter := provider.Meter()
	metrics, err := metric.NewKernelMetric(meter)
	if err != nil {
		return err
	}

	kernelAttr := attribute.String("kernel.id", k.ID())
	_, err = meter.RegisterCallback(func(_ context.Context, observer otelmetric.Observer) error {
		for _, stat := range k.allocator.PoolStats() {
			opts := otelmetric.WithAttributes(
				kernelAttr,
				attribute.Int("pool.id", int(stat.ID)),
				attribute.Int("pool.block_size", stat.BlockSize))
			observer.ObserveInt64(metrics.PoolFree(), int64(stat.Free), opts)
			observer.ObserveInt64(metrics.PoolMinFree(), int64(stat.MinFree), opts)
		}

		for _, ao := range k.ActiveObjects() {
			opts := otelmetric.WithAttributes(
				kernelAttr,
				attribute.String("active_object", ao.Name()),
				attribute.Int("priority", int(ao.Priority())))
			if q := ao.Queue(); q != nil {
				observer.ObserveInt64(metrics.QueueDepth(), int64(q.Len()), opts)
				observer.ObserveInt64(metrics.QueueHighWater(), int64(q.HighWaterMark()), opts)
			}
			observer.ObserveInt64(metrics.EventsProcessed(), ao.Processed(), opts)
		}

		observer.ObserveInt64(metrics.EventsPublished(), k.Published(), otelmetric.WithAttributes(kernelAttr))
		return nil
	}, metrics.Observables()...)

	return err
}
