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

package metric

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type failingMeter struct {
	metric.Meter
	failKey string
}

var errBoom = errors.New("boom")

func (m failingMeter) Int64ObservableGauge(name string, opts ...metric.Int64ObservableGaugeOption) (metric.Int64ObservableGauge, error) {
	if name == m.failKey {
		return nil, errBoom
	}
	return m.Meter.Int64ObservableGauge(name, opts...)
}

func (m failingMeter) Int64ObservableCounter(name string, opts ...metric.Int64ObservableCounterOption) (metric.Int64ObservableCounter, error) {
	if name == m.failKey {
		return nil, errBoom
	}
	return m.Meter.Int64ObservableCounter(name, opts...)
}

func TestKernelMetric(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	instruments, err := NewKernelMetric(meter)
	require.NoError(t, err)
	require.NotNil(t, instruments)

	require.NotNil(t, instruments.PoolFree())
	require.NotNil(t, instruments.PoolMinFree())
	require.NotNil(t, instruments.QueueDepth())
	require.NotNil(t, instruments.QueueHighWater())
	require.NotNil(t, instruments.EventsProcessed())
	require.NotNil(t, instruments.EventsPublished())
	require.Len(t, instruments.Observables(), 6)
}

func TestKernelMetricErrors(t *testing.T) {
	baseMeter := noop.NewMeterProvider().Meter("test")
	for _, key := range []string{
		"kernel.pool.free",
		"kernel.pool.min_free",
		"kernel.queue.depth",
		"kernel.queue.high_water",
		"kernel.events.processed",
		"kernel.events.published",
	} {
		t.Run(key, func(t *testing.T) {
			instruments, err := NewKernelMetric(failingMeter{Meter: baseMeter, failKey: key})
			require.ErrorIs(t, err, errBoom)
			require.Nil(t, instruments)
		})
	}
}

func TestProvider(t *testing.T) {
	require.NotNil(t, NewProvider().Meter())
	require.NotNil(t, NewProviderFrom(noop.NewMeterProvider()).Meter())
}
