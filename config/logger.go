package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

func GetLogger() *logrus.Logger {
	return logg
}

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetLevel(logrus.InfoLevel)
	logg.SetOutput(os.Stdout)
}

func LogError(module string, funcName string, context string, data any, err error) {
	if data != nil {
		logg.WithFields(logrus.Fields{
			"module":   module,
			"funcName": funcName,
			"context":  context,
			"data":     data,
		}).Error(err.Error())
	} else {
		logg.WithFields(logrus.Fields{
			"module":   module,
			"funcName": funcName,
			"context":  context,
		}).Error(err.Error())
	}
}
