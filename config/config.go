/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"github.com/go-logr/logr"

	"dirpx.dev/typex/apis"
)

const (
	// DefaultMaxDepth represents the default for MaxDepth.
	// A value of 32 should be sufficient for all practical purposes.
	DefaultMaxDepth = 32
	// DefaultMaxPreviewElems represents the default for MaxPreviewElems.
	// Container previews show at most this many elements before truncation.
	DefaultMaxPreviewElems = 5
	// DefaultMaxPreviewRunes represents the default for MaxPreviewRunes.
	// String previews show at most this many characters before truncation.
	DefaultMaxPreviewRunes = 50
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure bounds are valid.
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.MaxPreviewElems < 0 {
		cfg.MaxPreviewElems = DefaultMaxPreviewElems
	}
	if cfg.MaxPreviewRunes < 0 {
		cfg.MaxPreviewRunes = DefaultMaxPreviewRunes
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MaxDepth:        DefaultMaxDepth,
		MaxPreviewElems: DefaultMaxPreviewElems,
		MaxPreviewRunes: DefaultMaxPreviewRunes,
		Logger:          logr.Discard(),
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMaxDepth sets the MaxDepth option.
// A negative value resets to the default.
func WithMaxDepth(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxDepth = DefaultMaxDepth
			return
		}
		c.MaxDepth = max
	}
}

// WithMaxPreviewElems sets the MaxPreviewElems option.
// A negative value resets to the default.
func WithMaxPreviewElems(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxPreviewElems = DefaultMaxPreviewElems
			return
		}
		c.MaxPreviewElems = max
	}
}

// WithMaxPreviewRunes sets the MaxPreviewRunes option.
// A negative value resets to the default.
func WithMaxPreviewRunes(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxPreviewRunes = DefaultMaxPreviewRunes
			return
		}
		c.MaxPreviewRunes = max
	}
}

// WithLogger sets the Logger option.
func WithLogger(log logr.Logger) Option {
	return func(c *apis.Config) {
		c.Logger = log
	}
}
