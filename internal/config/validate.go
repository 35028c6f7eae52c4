// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package config declares the configuration schema and its validation.
package config

import (
	"fmt"
	"time"

	"github.com/telusuri/telusuri/internal/validation"
)

// Validate checks the unmarshalled configuration against the schema's
// validate tags plus the duration fields the tag language cannot express.
func Validate(
	cfg *Config,
) error {
	if err := validation.Instance().Struct(cfg); err != nil {
		return err
	}

	for _, d := range []struct {
		name  string
		value string
	}{
		{name: "api.security.access_token_ttl", value: cfg.API.Security.AccessTokenTTL},
		{name: "api.security.refresh_token_ttl", value: cfg.API.Security.RefreshTokenTTL},
	} {
		if d.value == "" {
			continue
		}
		if _, err := time.ParseDuration(d.value); err != nil {
			return fmt.Errorf("invalid duration for %s: %w", d.name, err)
		}
	}

	return nil
}

// AccessTokenTTL returns the configured access token lifetime, defaulting
// to five minutes.
func (c *Config) AccessTokenTTL() time.Duration {
	return durationOr(c.API.Security.AccessTokenTTL, 5*time.Minute)
}

// RefreshTokenTTL returns the configured refresh token lifetime, defaulting
// to fifteen days.
func (c *Config) RefreshTokenTTL() time.Duration {
	return durationOr(c.API.Security.RefreshTokenTTL, 15*24*time.Hour)
}

func durationOr(
	value string,
	fallback time.Duration,
) time.Duration {
	if value == "" {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}

	return d
}
