// Package confloader loads SnipBoard configuration.
//
// It layers sources with koanf, later sources overriding earlier ones:
//
//  1. Defaults already present in the target struct
//  2. YAML configuration file
//  3. SNIPBOARD_* environment variables
//  4. Overrides passed with WithOverrides (dotted keys, e.g. from flags)
//
// Environment names are matched against the koanf tags of the target, so
// SNIPBOARD_STORAGE_DATA_DIR sets storage.data_dir. Watcher reports writes
// to the configuration file, once per burst, so the server can re-read it.
package confloader
