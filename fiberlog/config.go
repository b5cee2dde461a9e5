package fiberlog

import "github.com/sirupsen/logrus"

// Config - настройки логирования запросов
type Config struct {
	Logger *logrus.Logger
	Tags   []string
}

// ConfigDefault используется, если конфиг не передан: статус, латентность,
// метод, путь и идентификатор запроса
var ConfigDefault = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		RequestID,
	},
}
