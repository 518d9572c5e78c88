// Package config holds sitegrep's runtime configuration: the flat Config
// populated from CLI flags, and the optional .sitegrep YAML file carrying
// per-site cookies, headers and User-Agent overrides.
package config
