// Copyright (c) PlateFeed (dev@platefeed.app)
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"github.com/curioswitch/go-curiostack/config"
)

// Spoonacular is the configuration for the third-party recipe API.
type Spoonacular struct {
	// APIKey is the server-held API key injected into upstream requests.
	// It is never returned to clients.
	APIKey string `koanf:"apikey"`

	// BaseURL is the base URL of the recipe API, e.g. https://api.spoonacular.com.
	BaseURL string `koanf:"baseurl"`
}

// Redis is the configuration for the optional recipe-info cache.
type Redis struct {
	// Address is the host:port of the redis server. Caching is disabled
	// when empty.
	Address string `koanf:"address"`
}

type Config struct {
	config.Common

	// Spoonacular is the configuration for the recipe API proxy.
	Spoonacular Spoonacular `koanf:"spoonacular"`

	// Redis is the configuration for the recipe-info cache.
	Redis Redis `koanf:"redis"`
}
