// Copyright 2026 The Waypost Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package waypost

import "errors"

var (
	// ErrRouterFrozen indicates a registration attempt after the router
	// started serving. Routes are registered during startup only.
	ErrRouterFrozen = errors.New("router is frozen")

	// ErrEmptyMethod indicates a route registered with an empty HTTP method.
	ErrEmptyMethod = errors.New("http method is empty")

	// ErrNilHandler indicates a route registered with a nil handler.
	ErrNilHandler = errors.New("handler is nil")

	// ErrBloomFilterSizeZero indicates that the bloom filter size must be
	// greater than zero.
	ErrBloomFilterSizeZero = errors.New("bloom filter size must be non-zero")

	// ErrBloomHashFunctionsInvalid indicates that the number of bloom hash
	// functions must be positive.
	ErrBloomHashFunctionsInvalid = errors.New("bloom hash functions must be positive")

	// ErrMeterProviderNil indicates a custom meter provider option with a
	// nil provider.
	ErrMeterProviderNil = errors.New("meter provider is nil")

	// ErrUnsupportedMetricsProvider indicates an unknown metrics provider name.
	ErrUnsupportedMetricsProvider = errors.New("unsupported metrics provider")
)
