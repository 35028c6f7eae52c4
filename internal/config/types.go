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

package config

// Config represents the root structure of the YAML configuration file.
// This struct is used to unmarshal configuration data from Viper.
type Config struct {
	API         API         `mapstructure:"api"         mask:"struct"`
	Database    Database    `mapstructure:"database"    mask:"struct"`
	Storage     Storage     `mapstructure:"storage"     mask:"struct"`
	Seed        Seed        `mapstructure:"seed"        mask:"struct"`
	Maintenance Maintenance `mapstructure:"maintenance"`
	// Debug enable or disable debug option set from CLI.
	Debug bool `mapstructure:"debug"`
}

// API configuration settings.
type API struct {
	// Port the server will bind to.
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
	// Security contains security-related configuration, such as CORS and
	// token settings.
	Security Security `mapstructure:"security" mask:"struct"`
}

// Security configuration settings for the API server.
type Security struct {
	// SigningKey signs and verifies JWT access and refresh tokens.
	SigningKey string `mapstructure:"signing_key" mask:"password" validate:"required"`
	// AccessTokenTTL is the access token lifetime (e.g. "5m").
	AccessTokenTTL string `mapstructure:"access_token_ttl"`
	// RefreshTokenTTL is the refresh token lifetime (e.g. "360h").
	RefreshTokenTTL string `mapstructure:"refresh_token_ttl"`
	// CORS settings for cross-origin requests.
	CORS CORS `mapstructure:"cors"`
}

// CORS configuration settings.
type CORS struct {
	// AllowOrigins is the list of allowed origins.
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// Database configuration settings.
type Database struct {
	// Driver selects the backing database: "postgres" or "sqlite".
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	// DSN is the driver-specific connection string.
	DSN string `mapstructure:"dsn" mask:"password" validate:"required"`
}

// Storage configuration for the S3-compatible image store.
type Storage struct {
	// Endpoint of the S3-compatible service.
	Endpoint string `mapstructure:"endpoint"`
	// Region of the bucket ("auto" for R2-style services).
	Region string `mapstructure:"region"`
	// Bucket images are uploaded to.
	Bucket string `mapstructure:"bucket"`
	// AccessKey for the bucket.
	AccessKey string `mapstructure:"access_key" mask:"password"`
	// SecretKey for the bucket.
	SecretKey string `mapstructure:"secret_key" mask:"password"`
	// PublicDomain is the base URL images are served from.
	PublicDomain string `mapstructure:"public_domain"`
}

// Seed configuration for first-deployment bootstrap.
type Seed struct {
	// AdminName is the display name of the bootstrap administrator.
	AdminName string `mapstructure:"admin_name"`
	// AdminUsername is the login name of the bootstrap administrator.
	AdminUsername string `mapstructure:"admin_username"`
	// AdminEmail is the email of the bootstrap administrator.
	AdminEmail string `mapstructure:"admin_email" validate:"omitempty,email"`
	// AdminPassword is the initial password of the bootstrap administrator.
	AdminPassword string `mapstructure:"admin_password" mask:"password"`
}

// Maintenance configuration for background jobs.
type Maintenance struct {
	// TokenPurgeSchedule is the cron spec for purging expired refresh
	// tokens. Defaults to hourly when empty.
	TokenPurgeSchedule string `mapstructure:"token_purge_schedule"`
	// ImageSweepSchedule is the cron spec for deleting dangling images.
	// Defaults to daily when empty.
	ImageSweepSchedule string `mapstructure:"image_sweep_schedule"`
}
