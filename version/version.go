package version

import "github.com/sirupsen/logrus"

// Set by the compiler via -ldflags.
var (
	// VERSION example: 0.3.1-4-g205bbb8
	VERSION string = "DEV_SNAPSHOT"

	// BUILD_TIME example: Fri Jan  6 00:45:46 CET 2017
	BUILD_TIME string = "UNSET"

	// BUILD_HOST example: ci-runner-3
	BUILD_HOST string = "UNSET"
)

// DumpInfo logs all above vars.
func DumpInfo(log *logrus.Entry) {
	log.Info("version: " + VERSION)
	log.Info("build time: " + BUILD_TIME)
	log.Info("build host: " + BUILD_HOST)
}
