package config

import "os"

func IsDebug() bool {
	return os.Getenv("CASA_DEBUG") == "1"
}
