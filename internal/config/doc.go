// Package config loads the mzscan TOML configuration.
//
// Every field has a default, so a missing file is not an error unless a path
// was given explicitly. The reader section maps onto reader.Option values.
package config
