package logging

import (
	"github.com/charmbracelet/log"
	wlogger "github.com/wailsapp/wails/v2/pkg/logger"
)

// Compile-time interface check.
var _ wlogger.Logger = WailsLogger{}

// WailsLogger routes Wails runtime logging through the shared logger.
type WailsLogger struct{}

func (WailsLogger) l() *log.Logger { return Logger().WithPrefix("wails") }

func (w WailsLogger) Print(message string)   { w.l().Print(message) }
func (w WailsLogger) Trace(message string)   { w.l().Debug(message) }
func (w WailsLogger) Debug(message string)   { w.l().Debug(message) }
func (w WailsLogger) Info(message string)    { w.l().Info(message) }
func (w WailsLogger) Warning(message string) { w.l().Warn(message) }
func (w WailsLogger) Error(message string)   { w.l().Error(message) }
func (w WailsLogger) Fatal(message string)   { w.l().Fatal(message) }
