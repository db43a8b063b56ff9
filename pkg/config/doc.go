// Package config loads configuration records from files and the
// environment.
//
// LoadFile decodes YAML into any struct with yaml tags, or JSON through its
// json tags when the file ends in .json. Load then applies environment variables through
// github.com/caarlos0/env/v11, prefixing every env tag with INAPP_ unless
// WithPrefix says otherwise. A .env file in the working directory is loaded
// with github.com/joho/godotenv on first use; LoadEnv loads others.
//
//	var cfg inappbrowser.Config
//	if path != "" {
//		if err := config.LoadFile(path, &cfg); err != nil {
//			return err
//		}
//	}
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Failures wrap ErrParsingConfig, ErrReadingFile or ErrDecodingFile.
package config
