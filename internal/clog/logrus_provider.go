package clog

import "github.com/sirupsen/logrus"

// logrusProvider backs the default Clog with a dedicated logrus.Logger so
// a caller's own root logrus logger (and its hooks/formatter) isn't
// silently mutated by this library turning its logging on.
type logrusProvider struct {
	log *logrus.Logger
}

var _ LogProvider = (*logrusProvider)(nil)

func newLogrusProvider() *logrusProvider {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &logrusProvider{log: l}
}

func (p *logrusProvider) Critical(format string, v ...interface{}) {
	p.log.Errorf("[CRITICAL] "+format, v...)
}

func (p *logrusProvider) Error(format string, v ...interface{}) {
	p.log.Errorf(format, v...)
}

func (p *logrusProvider) Warn(format string, v ...interface{}) {
	p.log.Warnf(format, v...)
}

func (p *logrusProvider) Debug(format string, v ...interface{}) {
	p.log.Debugf(format, v...)
}
