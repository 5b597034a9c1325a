// Package config loads the settings of a training run from defaults, a
// properties or YAML file, a .env file and TASKPRIO_* environment variables.
package config
