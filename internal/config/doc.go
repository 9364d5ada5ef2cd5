// Package config supplies the admission pipeline's data-driven policy:
// title bounds, date requirements, the boilerplate-title denylist, and
// placeholder-image patterns. Built-in defaults work without any file;
// a YAML file overlays them.
package config
