// Package logger provides structured logging for mercurekit using zerolog.
//
// Components obtain a tagged logger with logger.Get("hub") or
// logger.WithComponent("dispatch") and log with map fields:
//
//	log := logger.Get("hub")
//	log.Debug("update delivered", logger.Fields(logger.FieldTopic, u.Topic))
package logger
