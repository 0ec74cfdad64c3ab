// Package config loads runtime configuration for the LocalBoost client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. LOCALBOOST_API_URL, LOCALBOOST_REQUEST_TIMEOUT, LOCALBOOST_DATA_DIR,
//     LOCALBOOST_LOG_LEVEL.
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-t int      request timeout (seconds)
//	-d string   data directory (database + device key)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "request_timeout": "10s",
//	  "data_dir": ".localboost",
//	  "log_level": "info"
//	}
package config
