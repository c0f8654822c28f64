// Package email отправляет служебные письма (оповещения о сбоях резервного копирования).
package email

import "strconv"

// Provider - отправитель писем
type Provider interface {
	Send(email *Email) error
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error
	Validate() error
}

// TemplateRenderer превращает шаблон и данные в HTML-тело письма
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
}

// Email - одно письмо. Если задан HTMLBody, Body уходит как text/plain альтернатива.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData - поля, подставляемые в шаблон
type TemplateData map[string]interface{}

// SMTPConfig - параметры SMTP сервера и отправителя
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// Enabled - задан ли SMTP сервер
func (c *SMTPConfig) Enabled() bool {
	return c != nil && c.Host != ""
}

func (c *SMTPConfig) addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
