// Package logger holds the process-wide zap logger. Init must run before
// anything logs; packages taking an injected *zap.Logger use zap.NewNop
// in tests instead.
package logger

import "go.uber.org/zap"

var Log *zap.Logger

func Init() {
	Log = zap.Must(zap.NewProduction())
}

func Sugar() *zap.SugaredLogger {
	return Log.Sugar()
}
